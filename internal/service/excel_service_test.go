package service

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.csv")
	content := "group,  GROUP to be ,sku,SKU TO BE,ship_to,cust_name\n" +
		"MT,MODERN TRADE,COLA 1.5L,COLA PREMIUM 1.5L,8000123,ALFA SUPERMARKET\n" +
		"GT,GENERAL TRADE\n" + // ragged row, missing cells read as empty
		",,,,,\n" // fully empty row is dropped
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := NewExcelService().ParseTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GROUP", "GROUP TO BE", "SKU", "SKU TO BE", "SHIP_TO", "CUST_NAME",
	}, table.Columns)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, "MODERN TRADE", table.Rows[0][models.MasterColGroupToBe])
	assert.Equal(t, "GENERAL TRADE", table.Rows[1][models.MasterColGroupToBe])
	assert.Equal(t, "", table.Rows[1][models.MasterColSKU])
}

func TestParseTableSkipsUnnamedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.csv")
	content := "group,,sku\nMT,scratch,COLA 1.5L\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := NewExcelService().ParseTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"GROUP", "SKU"}, table.Columns)
	require.Equal(t, 1, table.RowCount())
	// Cells under the unnamed header are ignored; columns past it keep
	// their own values.
	assert.Equal(t, "MT", table.Rows[0]["GROUP"])
	assert.Equal(t, "COLA 1.5L", table.Rows[0]["SKU"])
}

func TestParseTableRejectsUnknownExtension(t *testing.T) {
	_, err := NewExcelService().ParseTable("orders.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestParseTableRejectsHeaderlessCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte(" , , \n"), 0o644))

	_, err := NewExcelService().ParseTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no named columns")
}

func sampleOutputRows() []models.OutputRow {
	return []models.OutputRow{
		{
			Year: 2025, Month: "MAR",
			Account: "MT", GroupAccount: "MODERN TRADE",
			SKU: "COLA PREMIUM 1.5L", MaterialDesc: "COLA 1.5L", GroupSKU: "sps",
			Region: "JAVA", DC: "DC BEKASI",
			POQty: models.NullableFloat{Value: 100, Valid: true},
			DOQty: models.NullableFloat{Value: 95.5, Valid: true},
		},
		{
			Account: "ZZ", GroupAccount: "UNKNOWN",
			SKU: "UNKNOWN", MaterialDesc: "NEVER SEEN", GroupSKU: "sps",
			RejectCode: "Z1", SAPRejection: "QTY CUT",
		},
	}
}

func TestExportRAWCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")
	require.NoError(t, NewExcelService().ExportRAW(sampleOutputRows(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, models.OutputColumns, records[0])
	assert.Equal(t, []string{
		"2025", "MAR", "MT", "MODERN TRADE", "COLA PREMIUM 1.5L", "COLA 1.5L",
		"sps", "JAVA", "DC BEKASI", "100", "95.5", "", "",
	}, records[1])
	// Invalid quantities and an unparseable date come out as empty cells and
	// a zero year, never as fabricated values.
	assert.Equal(t, []string{
		"0", "", "ZZ", "UNKNOWN", "UNKNOWN", "NEVER SEEN",
		"sps", "", "", "", "", "Z1", "QTY CUT",
	}, records[2])
}

func TestExportRAWXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.xlsx")
	require.NoError(t, NewExcelService().ExportRAW(sampleOutputRows(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RAWSheetName}, f.GetSheetList())

	rows, err := f.GetRows(RAWSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.OutputColumns, rows[0])

	account, err := f.GetCellValue(RAWSheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "MODERN TRADE", account)

	poQty, err := f.GetCellValue(RAWSheetName, "J3")
	require.NoError(t, err)
	assert.Equal(t, "", poQty)
}

func TestExportRAWRejectsUnknownExtension(t *testing.T) {
	err := NewExcelService().ExportRAW(nil, "raw.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export extension")
}

func TestGenerateMasterTemplateIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	svc := NewExcelService()
	require.NoError(t, svc.GenerateMasterTemplate(path))

	table, err := svc.ParseTable(path)
	require.NoError(t, err)

	assert.NoError(t, ValidateMasterTable(table, config.DefaultRules()))
	assert.NotZero(t, table.RowCount())
}
