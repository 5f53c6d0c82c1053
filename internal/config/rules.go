package config

import (
	"fmt"
	"os"

	"github.com/keiichiro05/LO-converter/internal/models"
	"gopkg.in/yaml.v3"
)

// Customer-identity variants. List Order extracts disagree on whether the
// customer key is a ship-to code or a customer name; each deployment picks
// one explicitly and the selected column becomes a required column on both
// tables.
const (
	CustomerKeyShipTo   = "ship_to"
	CustomerKeyCustName = "cust_name"
)

// ClassifierRule is one SKU-group bucket. Contains terms match
// case-insensitively as substrings; Equals terms match exactly. Rules are
// evaluated in order, first match wins.
type ClassifierRule struct {
	Bucket   string   `yaml:"bucket"`
	Contains []string `yaml:"contains,omitempty"`
	Equals   []string `yaml:"equals,omitempty"`
}

// SKUOverride pins the resolved SKU for one known bad material/account
// combination, regardless of what the base cross-walk says.
type SKUOverride struct {
	MaterialDesc string `yaml:"material_desc"`
	AccountCode  string `yaml:"account_code"`
	SKU          string `yaml:"sku"`
}

// Rules holds the mapping constants of the conversion. Defaults cover the
// standard deployment; a yaml file can override them per installation.
type Rules struct {
	CustomerKey     string           `yaml:"customer_key"`
	LocalKeyAccount string           `yaml:"local_key_account"`
	UnknownMarker   string           `yaml:"unknown_marker"`
	SKUOverride     SKUOverride      `yaml:"sku_override"`
	GroupSKU        []ClassifierRule `yaml:"group_sku"`
	GroupSKUDefault string           `yaml:"group_sku_default"`
}

func DefaultRules() *Rules {
	return &Rules{
		CustomerKey:     CustomerKeyShipTo,
		LocalKeyAccount: "LKA",
		UnknownMarker:   "UNKNOWN",
		SKUOverride: SKUOverride{
			MaterialDesc: "5 GALLON AQUA LOCAL",
			AccountCode:  "IGR",
			SKU:          "AQUA JUGS 19L / AQUA AIR MINERAL (BKL) GLN 19L",
		},
		GroupSKU: []ClassifierRule{
			{Bucket: "Mizone", Contains: []string{"mizone"}},
			{Bucket: "VIT", Contains: []string{"vit"}},
			{Bucket: "spec SKU", Equals: []string{
				"1500ML AQUA LOCAL MULTIPACK 1X6",
				"750ML AQUA LOCAL 1X18",
				"450ML AQUA KIDS 1X24",
				"220ML AQUA CUBE MINI BOTTLE LOCAL 1X24",
			}},
			{Bucket: "aqua life", Equals: []string{
				"1100ML AQUA LOCAL 1X12 BARCODE ON CAP",
			}},
		},
		GroupSKUDefault: "sps",
	}
}

// LoadRules returns the defaults overlaid with the yaml file at path, or the
// plain defaults when path is empty.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *Rules) Validate() error {
	if r.CustomerKey != CustomerKeyShipTo && r.CustomerKey != CustomerKeyCustName {
		return fmt.Errorf("invalid customer_key %q: must be %q or %q",
			r.CustomerKey, CustomerKeyShipTo, CustomerKeyCustName)
	}
	if r.UnknownMarker == "" {
		return fmt.Errorf("unknown_marker must not be empty")
	}
	return nil
}

// MasterCustomerKeyColumn is the master column holding the cross-walk key.
func (r *Rules) MasterCustomerKeyColumn() string {
	if r.CustomerKey == CustomerKeyCustName {
		return models.MasterColCustomerName
	}
	return models.MasterColShipTo
}

// MasterCustomerNameColumns lists the accepted spellings of the master
// column holding the canonical customer name. At least one must be present.
func (r *Rules) MasterCustomerNameColumns() []string {
	if r.CustomerKey == CustomerKeyCustName {
		return []string{models.MasterColCustomerNameToBe, models.MasterColCustNameToBe}
	}
	return []string{models.MasterColCustName, models.MasterColCustomerName}
}

// OrderCustomerColumn is the extract column the account resolver reads for
// the local-key-account override.
func (r *Rules) OrderCustomerColumn() string {
	if r.CustomerKey == CustomerKeyCustName {
		return models.OrderColCustName
	}
	return models.OrderColShipTo
}
