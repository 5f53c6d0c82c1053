package service

import (
	"strings"

	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/models"
)

// CrossWalk holds the three lookup maps derived from a validated master
// table. Built once per conversion, never mutated mid-run.
type CrossWalk struct {
	// GroupAccount maps raw group codes to canonical account names.
	GroupAccount map[string]string
	// SKU maps raw material descriptions to canonical SKU names.
	SKU map[string]string
	// Customer maps trimmed, lower-cased customer keys (ship-to codes or
	// customer names, per deployment) to canonical customer names.
	Customer map[string]string
}

// BuildCrossWalk iterates master rows in file order. The last occurrence of
// a duplicate key wins. Rows with a blank key or blank value are skipped for
// that map only, without erroring.
func BuildCrossWalk(master *models.Table, rules *config.Rules) *CrossWalk {
	cw := &CrossWalk{
		GroupAccount: make(map[string]string),
		SKU:          make(map[string]string),
		Customer:     make(map[string]string),
	}

	keyCol := rules.MasterCustomerKeyColumn()
	nameCol := masterCustomerNameColumn(master, rules)

	for _, row := range master.Rows {
		group := strings.TrimSpace(row[models.MasterColGroup])
		groupToBe := strings.TrimSpace(row[models.MasterColGroupToBe])
		if group != "" && groupToBe != "" {
			cw.GroupAccount[group] = groupToBe
		}

		sku := strings.TrimSpace(row[models.MasterColSKU])
		skuToBe := strings.TrimSpace(row[models.MasterColSKUToBe])
		if sku != "" && skuToBe != "" {
			cw.SKU[sku] = skuToBe
		}

		if nameCol == "" {
			continue
		}
		// Downstream lookups match free-text customer fields, so keys are
		// case-folded here.
		custKey := customerKey(row[keyCol])
		custName := strings.TrimSpace(row[nameCol])
		if custKey != "" && custName != "" {
			cw.Customer[custKey] = custName
		}
	}

	return cw
}

func customerKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
