package handler

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/keiichiro05/LO-converter/internal/repository"
	"github.com/keiichiro05/LO-converter/internal/service"
	"github.com/keiichiro05/LO-converter/internal/utils"
)

type MasterHandler struct {
	masterRepo   *repository.MasterRepository
	excelService *service.ExcelService
	rules        *config.Rules
	cfg          *config.Config
}

func NewMasterHandler(
	masterRepo *repository.MasterRepository,
	excelService *service.ExcelService,
	rules *config.Rules,
	cfg *config.Config,
) *MasterHandler {
	return &MasterHandler{
		masterRepo:   masterRepo,
		excelService: excelService,
		rules:        rules,
		cfg:          cfg,
	}
}

// UploadMaster parses and validates a master file and opens a session-scoped
// working copy.
func (h *MasterHandler) UploadMaster(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".xlsx" && ext != ".csv" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only .xlsx and .csv files are allowed", nil)
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	code := fmt.Sprintf("MASTER-%s", uuid.New().String()[:8])
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", code, ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	table, err := h.excelService.ParseTable(filePath)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to load master file", err)
	}
	if err := service.ValidateMasterTable(table, h.rules); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Master file failed validation", err)
	}

	session := &models.MasterSession{
		Code:     code,
		Filename: file.Filename,
		Table:    table,
	}
	if err := h.masterRepo.Save(c.Context(), session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store master session", err)
	}

	return utils.SuccessResponse(c, "Master file loaded", fiber.Map{
		"code":       session.Code,
		"columns":    table.Columns,
		"total_rows": table.RowCount(),
		"preview":    previewRows(table, 10),
		"expires_in": h.cfg.MasterTTL.String(),
	})
}

// GetMaster returns the current working copy.
func (h *MasterHandler) GetMaster(c *fiber.Ctx) error {
	session, err := h.masterRepo.Get(c.Context(), c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Master session not found", err)
	}
	return utils.SuccessResponse(c, "Master session retrieved", session)
}

// ReplaceMaster swaps the whole working copy for the submitted table. Row
// edits, additions and deletions all arrive through here, so a conversion
// only ever sees a fully saved table.
func (h *MasterHandler) ReplaceMaster(c *fiber.Ctx) error {
	session, err := h.masterRepo.Get(c.Context(), c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Master session not found", err)
	}

	var table models.Table
	if err := c.BodyParser(&table); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid table payload", err)
	}

	normalizeTable(&table)
	if err := service.ValidateMasterTable(&table, h.rules); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Edited master failed validation", err)
	}

	session.Table = &table
	if err := h.masterRepo.Save(c.Context(), session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store master session", err)
	}

	return utils.SuccessResponse(c, "Master data updated", fiber.Map{
		"code":       session.Code,
		"total_rows": table.RowCount(),
	})
}

type addColumnRequest struct {
	Name string `json:"name"`
}

// AddColumn appends a new empty column to the working copy.
func (h *MasterHandler) AddColumn(c *fiber.Ctx) error {
	session, err := h.masterRepo.Get(c.Context(), c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Master session not found", err)
	}

	var req addColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request payload", err)
	}

	name := service.NormalizeColumn(req.Name)
	if name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Column name is required", nil)
	}
	if session.Table.HasColumn(name) {
		return utils.ErrorResponse(c, fiber.StatusConflict, fmt.Sprintf("Column %q already exists", name), nil)
	}

	session.Table.Columns = append(session.Table.Columns, name)
	for _, row := range session.Table.Rows {
		row[name] = ""
	}

	if err := h.masterRepo.Save(c.Context(), session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store master session", err)
	}

	return utils.SuccessResponse(c, "Column added", fiber.Map{
		"code":    session.Code,
		"columns": session.Table.Columns,
	})
}

// DeleteMaster discards the working copy.
func (h *MasterHandler) DeleteMaster(c *fiber.Ctx) error {
	if err := h.masterRepo.Delete(c.Context(), c.Params("code")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete master session", err)
	}
	return utils.SuccessResponse(c, "Master session discarded", nil)
}

// DownloadTemplate serves a starter master workbook.
func (h *MasterHandler) DownloadTemplate(c *fiber.Ctx) error {
	templatePath := filepath.Join(h.cfg.ExportPath, fmt.Sprintf("master_template_%s.xlsx", time.Now().Format("20060102")))
	if err := h.excelService.GenerateMasterTemplate(templatePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", err)
	}
	return c.Download(templatePath, "master_template.xlsx")
}

func previewRows(table *models.Table, limit int) []map[string]string {
	if len(table.Rows) > limit {
		return table.Rows[:limit]
	}
	return table.Rows
}

// normalizeTable re-normalizes column names on an edited table, since the
// editor round-trips raw JSON.
func normalizeTable(t *models.Table) {
	columns := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		if normalized := service.NormalizeColumn(col); normalized != "" {
			columns = append(columns, normalized)
		}
	}

	rows := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(row))
		for col, val := range row {
			if normalized := service.NormalizeColumn(col); normalized != "" {
				record[normalized] = val
			}
		}
		rows = append(rows, record)
	}

	t.Columns = columns
	t.Rows = rows
}
