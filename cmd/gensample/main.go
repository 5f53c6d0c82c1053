package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Generates a sample master workbook and a matching "List Order" extract for
// manual testing of the upload/convert flow.
func main() {
	outDir := "./samples"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		return
	}

	masterPath := filepath.Join(outDir, "master.xlsx")
	if err := writeSheet(masterPath, "Master",
		[]string{"GROUP", "GROUP TO BE", "SKU", "SKU TO BE", "ship_to", "CUST_NAME"},
		[][]interface{}{
			{"MT", "MODERN TRADE", "COLA 1.5L", "COLA PREMIUM 1.5L", "8000123", "ALFA SUPERMARKET"},
			{"GT", "GENERAL TRADE", "600ML AQUA LOCAL 1X24", "AQUA 600ML 1X24", "8000456", "TOKO BERKAH"},
			{"IGR", "IGR", "5 GALLON AQUA LOCAL", "AQUA GALLON 19L", "8000999", "INDOGROSIR"},
			{"LKA", "LOCAL KEY ACCOUNT", "500ML MIZONE ACTIV LOCAL 1X12", "MIZONE ACTIV 500ML", "8000789", "PT SUMBER AIR"},
		}); err != nil {
		fmt.Printf("Error writing master sample: %v\n", err)
		return
	}

	orderPath := filepath.Join(outDir, "List Order sample.xlsx")
	if err := writeSheet(orderPath, "Sheet1",
		[]string{"po_creation_date", "group", "material_desc", "ship_to", "region_ops",
			"dc_name_sl_forecast", "po_qty_cap", "do_qty_nett", "reject_code", "sap_rejection"},
		[][]interface{}{
			{"Monday, March 3, 2025", "MT", "COLA 1.5L", "8000123", "JAVA", "DC BEKASI", 100, 95, "", ""},
			{"Tuesday, March 4, 2025", "LKA", "600ML AQUA LOCAL 1X24", "8000789", "SUMATRA", "DC MEDAN", 50, 50, "", ""},
			{"Wednesday, March 5, 2025", "igr", "5 GALLON AQUA LOCAL", "8000999", "JAVA", "DC BEKASI", 200, 180, "Z1", "QTY CUT"},
			{"not a date", "GT", "500ML MIZONE ACTIV LOCAL 1X12", "8000456", "BALI", "DC DENPASAR", 30, "-", "", ""},
		}); err != nil {
		fmt.Printf("Error writing List Order sample: %v\n", err)
		return
	}

	fmt.Printf("Samples written to %s:\n  %s\n  %s\n", outDir, masterPath, orderPath)
}

func writeSheet(path, sheetName string, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", columnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", columnName(len(headers)-1)), headerStyle)

	for rowIdx, rowData := range rows {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", columnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	return f.SaveAs(path)
}

func columnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
