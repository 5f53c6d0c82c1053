package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/models"
)

// SchemaError reports every required column missing from an input table, not
// just the first. The caller aborts the run before any row processing.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s is missing required columns: %s",
		e.Table, strings.Join(e.Missing, ", "))
}

// FilenameContractError rejects a List Order upload whose filename lacks the
// required marker. Checked before parsing.
type FilenameContractError struct {
	Filename string
}

func (e *FilenameContractError) Error() string {
	return fmt.Sprintf("filename %q must contain %q", e.Filename, models.OrderFilenameMarker)
}

// NormalizeColumn folds a header cell into its canonical form: surrounding
// whitespace trimmed, internal runs collapsed, upper-cased. Applied uniformly
// to both tables so lookup keys stay consistent downstream.
func NormalizeColumn(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// ValidateOrderFilename enforces the filename contract on the order extract.
func ValidateOrderFilename(filename string) error {
	if !strings.Contains(filename, models.OrderFilenameMarker) {
		return &FilenameContractError{Filename: filename}
	}
	return nil
}

// ValidateMasterTable checks the master table's required columns, including
// the configured customer-key column and the at-least-one-of constraint on
// the customer-name column spellings.
func ValidateMasterTable(t *models.Table, rules *config.Rules) error {
	required := []string{
		models.MasterColGroup,
		models.MasterColGroupToBe,
		models.MasterColSKU,
		models.MasterColSKUToBe,
		rules.MasterCustomerKeyColumn(),
	}

	missing := missingColumns(t, required)

	if masterCustomerNameColumn(t, rules) == "" {
		missing = append(missing, strings.Join(rules.MasterCustomerNameColumns(), " or "))
	}

	if len(missing) > 0 {
		return &SchemaError{Table: "master table", Missing: missing}
	}
	return nil
}

// ValidateOrderTable checks the List Order extract's required columns.
func ValidateOrderTable(t *models.Table, rules *config.Rules) error {
	required := []string{
		models.OrderColPOCreationDate,
		models.OrderColGroup,
		models.OrderColMaterialDesc,
		rules.OrderCustomerColumn(),
		models.OrderColRegionOps,
		models.OrderColDCName,
		models.OrderColPOQty,
		models.OrderColDOQty,
		models.OrderColRejectCode,
		models.OrderColSAPRejection,
	}

	if missing := missingColumns(t, required); len(missing) > 0 {
		return &SchemaError{Table: "List Order", Missing: missing}
	}
	return nil
}

func missingColumns(t *models.Table, required []string) []string {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

// masterCustomerNameColumn picks the first accepted customer-name spelling
// present in the master table, or "" when none is.
func masterCustomerNameColumn(t *models.Table, rules *config.Rules) string {
	for _, col := range rules.MasterCustomerNameColumns() {
		if t.HasColumn(col) {
			return col
		}
	}
	return ""
}
