package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/hibiken/asynq"
	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/keiichiro05/LO-converter/internal/repository"
	"github.com/keiichiro05/LO-converter/internal/service"
	"github.com/keiichiro05/LO-converter/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type ConversionTaskHandler struct {
	cfg          *config.Config
	rules        *config.Rules
	masterRepo   *repository.MasterRepository
	convRepo     *repository.ConversionRepository
	excelService *service.ExcelService
	log          *logrus.Logger
}

func NewConversionTaskHandler(rdb *redis.Client, cfg *config.Config, rules *config.Rules) *ConversionTaskHandler {
	return &ConversionTaskHandler{
		cfg:          cfg,
		rules:        rules,
		masterRepo:   repository.NewMasterRepository(rdb, cfg.MasterTTL),
		convRepo:     repository.NewConversionRepository(rdb, cfg.ConversionTTL),
		excelService: service.NewExcelService(),
		log:          utils.GetLogger(),
	}
}

type ConversionTaskPayload struct {
	Code string `json:"code"`
}

// Handle runs one queued conversion end to end. The conversion itself is a
// single synchronous pass; this handler only loads inputs, reports progress
// and delivers the output file.
func (h *ConversionTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload ConversionTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log := h.log.WithField("conversion", payload.Code)

	session, err := h.convRepo.Get(ctx, payload.Code)
	if err != nil {
		return fmt.Errorf("failed to get conversion session: %w", err)
	}

	if session.Status == models.ConversionStatusCompleted || session.Status == models.ConversionStatusFailed {
		log.Infof("conversion is already %s, skipping", session.Status)
		return nil
	}

	session.Status = models.ConversionStatusProcessing
	if err := h.convRepo.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to update conversion status: %w", err)
	}

	rows, stats, err := h.convert(ctx, session)
	if err != nil {
		session.Status = models.ConversionStatusFailed
		session.Error = err.Error()
		if updateErr := h.convRepo.Update(ctx, session); updateErr != nil {
			log.WithError(updateErr).Warn("failed to record conversion failure")
		}
		return err
	}

	outputPath := filepath.Join(h.cfg.ExportPath, fmt.Sprintf("raw_%s.%s", session.Code, session.Format))
	if err := h.excelService.ExportRAW(rows, outputPath); err != nil {
		session.Status = models.ConversionStatusFailed
		session.Error = err.Error()
		if updateErr := h.convRepo.Update(ctx, session); updateErr != nil {
			log.WithError(updateErr).Warn("failed to record conversion failure")
		}
		return fmt.Errorf("failed to export result: %w", err)
	}

	session.Status = models.ConversionStatusCompleted
	session.OutputPath = outputPath
	session.TotalRows = stats.Rows
	session.UnresolvedAccounts = stats.UnresolvedAccounts
	session.UnresolvedSKUs = stats.UnresolvedSKUs
	session.UnparseableDates = stats.UnparseableDates
	if err := h.convRepo.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to record conversion result: %w", err)
	}

	log.WithFields(logrus.Fields{
		"rows":   stats.Rows,
		"output": outputPath,
	}).Info("conversion completed")

	return nil
}

func (h *ConversionTaskHandler) convert(ctx context.Context, session *models.ConversionSession) ([]models.OutputRow, *service.ConversionStats, error) {
	master, err := h.masterRepo.Get(ctx, session.MasterCode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load master session: %w", err)
	}

	order, err := h.excelService.ParseTable(session.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load List Order file: %w", err)
	}

	engine := service.NewConversionEngine(h.rules, h.log)
	engine.Progress = func(processed, total int) {
		if total == 0 {
			return
		}
		pct := float64(processed) / float64(total) * 100
		if err := h.convRepo.SetProgress(ctx, session.Code, pct); err != nil {
			h.log.WithError(err).Debug("failed to record progress")
		}
	}

	return engine.Convert(master.Table, order)
}
