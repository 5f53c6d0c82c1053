package handler

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/keiichiro05/LO-converter/internal/repository"
	"github.com/keiichiro05/LO-converter/internal/service"
	"github.com/keiichiro05/LO-converter/internal/utils"
	"github.com/keiichiro05/LO-converter/internal/worker"
)

type ConvertHandler struct {
	masterRepo   *repository.MasterRepository
	convRepo     *repository.ConversionRepository
	excelService *service.ExcelService
	asynqClient  *asynq.Client
	rules        *config.Rules
	cfg          *config.Config
}

func NewConvertHandler(
	masterRepo *repository.MasterRepository,
	convRepo *repository.ConversionRepository,
	excelService *service.ExcelService,
	asynqClient *asynq.Client,
	rules *config.Rules,
	cfg *config.Config,
) *ConvertHandler {
	return &ConvertHandler{
		masterRepo:   masterRepo,
		convRepo:     convRepo,
		excelService: excelService,
		asynqClient:  asynqClient,
		rules:        rules,
		cfg:          cfg,
	}
}

// UploadListOrder accepts a List Order extract, validates it up front
// (filename contract, extension, schema) and queues the conversion. A run is
// either queued whole or rejected with no partial output.
func (h *ConvertHandler) UploadListOrder(c *fiber.Ctx) error {
	masterCode := c.FormValue("master_code")
	if masterCode == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "master_code is required", nil)
	}
	if _, err := h.masterRepo.Get(c.Context(), masterCode); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Master session not found", err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	// Filename contract comes before anything touches the file content.
	if err := service.ValidateOrderFilename(file.Filename); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid List Order filename", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only .xlsx and .csv files are allowed", nil)
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	code := fmt.Sprintf("CONVERT-%s", uuid.New().String()[:8])
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", code, ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	table, err := h.excelService.ParseTable(filePath)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to load List Order file", err)
	}
	if err := service.ValidateOrderTable(table, h.rules); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "List Order failed validation", err)
	}

	session := &models.ConversionSession{
		Code:       code,
		MasterCode: masterCode,
		Filename:   file.Filename,
		FilePath:   filePath,
		Format:     strings.TrimPrefix(ext, "."),
		TotalRows:  table.RowCount(),
		Status:     models.ConversionStatusUploaded,
	}
	if err := h.convRepo.Create(c.Context(), session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create conversion session", err)
	}

	if h.asynqClient == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Background job processing is not available (Redis not connected)", nil)
	}

	payload, _ := json.Marshal(worker.ConversionTaskPayload{Code: session.Code})
	task := asynq.NewTask(worker.TaskTypeConvert, payload)
	info, err := h.asynqClient.Enqueue(task)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue conversion task", err)
	}

	return utils.SuccessResponse(c, "Conversion queued", fiber.Map{
		"job_id":  info.ID,
		"session": session,
	})
}

// GetConversion returns a conversion record with its live progress.
func (h *ConvertHandler) GetConversion(c *fiber.Ctx) error {
	session, err := h.convRepo.Get(c.Context(), c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Conversion not found", err)
	}

	return utils.SuccessResponse(c, "Conversion retrieved", fiber.Map{
		"session":  session,
		"progress": h.convRepo.GetProgress(c.Context(), session.Code),
	})
}

// ListConversions returns recent conversions, newest first.
func (h *ConvertHandler) ListConversions(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	sessions, total, err := h.convRepo.List(c.Context(), params.Limit, offset)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve conversions", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, total)
	return utils.PaginatedResponseBuilder(c, "Conversions retrieved", fiber.Map{
		"conversions": sessions,
	}, pagination)
}

// DownloadResult serves the RAW file of a completed conversion.
func (h *ConvertHandler) DownloadResult(c *fiber.Ctx) error {
	session, err := h.convRepo.Get(c.Context(), c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Conversion not found", err)
	}
	if session.Status != models.ConversionStatusCompleted {
		return utils.ErrorResponse(c, fiber.StatusConflict,
			fmt.Sprintf("Conversion is %s, not completed", session.Status), nil)
	}

	return c.Download(session.OutputPath, fmt.Sprintf("RAW.%s", session.Format))
}
