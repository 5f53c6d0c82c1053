package service

import (
	"testing"

	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"po_creation_date", "PO_CREATION_DATE"},
		{"  GROUP TO BE  ", "GROUP TO BE"},
		{"group   to    be", "GROUP TO BE"},
		{"Ship_To", "SHIP_TO"},
		{"\tdc_name_sl_forecast\n", "DC_NAME_SL_FORECAST"},
		{"   ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeColumn(tt.in), "input %q", tt.in)
	}
}

func TestValidateOrderFilename(t *testing.T) {
	assert.NoError(t, ValidateOrderFilename("List Order March 2025.xlsx"))
	assert.NoError(t, ValidateOrderFilename("export List Order.csv"))

	err := ValidateOrderFilename("orders-march.xlsx")
	require.Error(t, err)
	var fnErr *FilenameContractError
	require.ErrorAs(t, err, &fnErr)
	assert.Equal(t, "orders-march.xlsx", fnErr.Filename)
	// Marker is case-sensitive.
	assert.Error(t, ValidateOrderFilename("list order march.xlsx"))
}

func TestValidateMasterTable(t *testing.T) {
	rules := config.DefaultRules()

	assert.NoError(t, ValidateMasterTable(testMaster(), rules))

	// Alternate customer-name spelling is accepted.
	alt := &models.Table{Columns: []string{
		models.MasterColGroup, models.MasterColGroupToBe,
		models.MasterColSKU, models.MasterColSKUToBe,
		models.MasterColShipTo, models.MasterColCustomerName,
	}}
	assert.NoError(t, ValidateMasterTable(alt, rules))
}

func TestValidateMasterTableReportsAllMissing(t *testing.T) {
	rules := config.DefaultRules()
	table := &models.Table{Columns: []string{
		models.MasterColGroup, models.MasterColSKU,
	}}

	err := ValidateMasterTable(table, rules)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "master table", schemaErr.Table)
	assert.ElementsMatch(t, []string{
		models.MasterColGroupToBe,
		models.MasterColSKUToBe,
		models.MasterColShipTo,
		"CUST_NAME or CUSTOMER_NAME",
	}, schemaErr.Missing)
}

func TestValidateMasterTableCustNameVariant(t *testing.T) {
	rules := config.DefaultRules()
	rules.CustomerKey = config.CustomerKeyCustName

	table := &models.Table{Columns: []string{
		models.MasterColGroup, models.MasterColGroupToBe,
		models.MasterColSKU, models.MasterColSKUToBe,
		models.MasterColCustomerName, models.MasterColCustomerNameToBe,
	}}
	assert.NoError(t, ValidateMasterTable(table, rules))

	// The ship_to layout no longer satisfies the variant's key column.
	err := ValidateMasterTable(testMaster(), rules)
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, models.MasterColCustomerName)
}

func TestValidateOrderTable(t *testing.T) {
	rules := config.DefaultRules()

	assert.NoError(t, ValidateOrderTable(testOrder(), rules))

	table := testOrder()
	table.Columns = []string{models.OrderColGroup, models.OrderColMaterialDesc}

	err := ValidateOrderTable(table, rules)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "List Order", schemaErr.Table)
	assert.ElementsMatch(t, []string{
		models.OrderColPOCreationDate,
		models.OrderColShipTo,
		models.OrderColRegionOps,
		models.OrderColDCName,
		models.OrderColPOQty,
		models.OrderColDOQty,
		models.OrderColRejectCode,
		models.OrderColSAPRejection,
	}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "missing required columns")
}
