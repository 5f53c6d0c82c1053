package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	require.NoError(t, rules.Validate())
	assert.Equal(t, CustomerKeyShipTo, rules.CustomerKey)
	assert.Equal(t, "LKA", rules.LocalKeyAccount)
	assert.Equal(t, "UNKNOWN", rules.UnknownMarker)
	assert.Equal(t, "5 GALLON AQUA LOCAL", rules.SKUOverride.MaterialDesc)
	assert.Equal(t, "sps", rules.GroupSKUDefault)
	assert.Len(t, rules.GroupSKU, 4)
}

func TestColumnBindingsShipToVariant(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, models.MasterColShipTo, rules.MasterCustomerKeyColumn())
	assert.Equal(t, models.OrderColShipTo, rules.OrderCustomerColumn())
	assert.Contains(t, rules.MasterCustomerNameColumns(), models.MasterColCustName)
}

func TestColumnBindingsCustNameVariant(t *testing.T) {
	rules := DefaultRules()
	rules.CustomerKey = CustomerKeyCustName

	assert.Equal(t, models.MasterColCustomerName, rules.MasterCustomerKeyColumn())
	assert.Equal(t, models.OrderColCustName, rules.OrderCustomerColumn())
	assert.Contains(t, rules.MasterCustomerNameColumns(), models.MasterColCustomerNameToBe)
}

func TestLoadRulesEmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRulesOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := []byte("customer_key: cust_name\nlocal_key_account: XKA\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, CustomerKeyCustName, rules.CustomerKey)
	assert.Equal(t, "XKA", rules.LocalKeyAccount)
	// Untouched fields keep their defaults
	assert.Equal(t, "UNKNOWN", rules.UnknownMarker)
	assert.Len(t, rules.GroupSKU, 4)
}

func TestLoadRulesRejectsBadCustomerKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("customer_key: nonsense\n"), 0o644))

	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer_key")
}
