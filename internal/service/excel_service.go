package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/xuri/excelize/v2"
)

// RAWSheetName is the single sheet of an xlsx result file.
const RAWSheetName = "RAW"

type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// ParseTable reads an xlsx or csv file into a Table with normalized column
// names. Any read or decode failure aborts before validation.
func (s *ExcelService) ParseTable(filePath string) (*models.Table, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		return s.parseXLSX(filePath)
	case ".csv":
		return s.parseCSV(filePath)
	default:
		return nil, fmt.Errorf("unsupported file extension %q: must be .xlsx or .csv", filepath.Ext(filePath))
	}
}

func (s *ExcelService) parseXLSX(filePath string) (*models.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Get first sheet
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return buildTable(rows)
}

func (s *ExcelService) parseCSV(filePath string) (*models.Table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	return buildTable(records)
}

// buildTable turns raw sheet rows into a Table. The first row is the header;
// fully empty trailing rows (a common spreadsheet artifact) are dropped,
// everything else is kept 1:1. Unnamed header cells are skipped, but each
// kept column remembers its sheet position so the data cells of later
// columns stay aligned.
func buildTable(rows [][]string) (*models.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file contains no header row")
	}

	var columns []string
	var positions []int
	for i, header := range rows[0] {
		if col := NormalizeColumn(header); col != "" {
			columns = append(columns, col)
			positions = append(positions, i)
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("file contains no named columns")
	}

	table := &models.Table{Columns: columns}
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		record := make(map[string]string, len(columns))
		for i, col := range columns {
			record[col] = getCellValue(row, positions[i])
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ExportRAW writes the conversion result in the format matching the original
// upload: a single-sheet workbook or a delimited text table.
func (s *ExcelService) ExportRAW(rows []models.OutputRow, filePath string) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		return s.exportXLSX(rows, filePath)
	case ".csv":
		return s.exportCSV(rows, filePath)
	default:
		return fmt.Errorf("unsupported export extension %q", filepath.Ext(filePath))
	}
}

func (s *ExcelService) exportXLSX(rows []models.OutputRow, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(RAWSheetName)
	if err != nil {
		return err
	}

	// Write headers
	for i, header := range models.OutputColumns {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(RAWSheetName, cell, header)
	}

	// Write data
	for rowIdx, out := range rows {
		row := rowIdx + 2
		for colIdx, value := range outputValues(out) {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(RAWSheetName, cell, value)
		}
	}

	// Set header style
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(RAWSheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(models.OutputColumns)-1)), headerStyle)

	// Set column widths for better readability
	columnWidths := []float64{8, 8, 12, 25, 40, 40, 12, 15, 25, 12, 12, 15, 20}
	for i, width := range columnWidths {
		colName := getColumnName(i)
		f.SetColWidth(RAWSheetName, colName, colName, width)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(filePath)
}

func (s *ExcelService) exportCSV(rows []models.OutputRow, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(models.OutputColumns); err != nil {
		return err
	}

	for _, out := range rows {
		record := make([]string, 0, len(models.OutputColumns))
		for _, value := range outputValues(out) {
			switch v := value.(type) {
			case float64:
				record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
			case int:
				record = append(record, strconv.Itoa(v))
			case string:
				record = append(record, v)
			default:
				record = append(record, fmt.Sprintf("%v", v))
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// outputValues lays out one output row in OutputColumns order. Invalid
// quantities become empty cells, never zeros.
func outputValues(out models.OutputRow) []interface{} {
	quantity := func(n models.NullableFloat) interface{} {
		if !n.Valid {
			return ""
		}
		return n.Value
	}

	return []interface{}{
		out.Year,
		out.Month,
		out.Account,
		out.GroupAccount,
		out.SKU,
		out.MaterialDesc,
		out.GroupSKU,
		out.Region,
		out.DC,
		quantity(out.POQty),
		quantity(out.DOQty),
		out.RejectCode,
		out.SAPRejection,
	}
}

// GenerateMasterTemplate creates a template Excel file for master uploads
func (s *ExcelService) GenerateMasterTemplate(outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Master"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := []string{
		models.MasterColGroup, models.MasterColGroupToBe,
		models.MasterColSKU, models.MasterColSKUToBe,
		models.MasterColShipTo, models.MasterColCustName,
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	// Add sample data
	sampleData := [][]interface{}{
		{"MT", "MODERN TRADE", "COLA 1.5L", "COLA PREMIUM 1.5L", "8000123", "ALFA SUPERMARKET"},
		{"GT", "GENERAL TRADE", "600ML AQUA LOCAL 1X24", "AQUA 600ML 1X24", "8000456", "TOKO BERKAH"},
		{"LKA", "LOCAL KEY ACCOUNT", "5 GALLON AQUA LOCAL", "AQUA JUGS 19L", "8000789", "PT SUMBER AIR"},
	}

	for rowIdx, rowData := range sampleData {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i, width := range []float64{10, 22, 35, 35, 12, 28} {
		colName := getColumnName(i)
		f.SetColWidth(sheetName, colName, colName, width)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(outputPath)
}

// Helper functions
func getCellValue(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
