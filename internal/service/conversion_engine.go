package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/sirupsen/logrus"
)

// monthAbbrevs is a fixed table so output never depends on the system
// locale.
var monthAbbrevs = map[time.Month]string{
	time.January:   "JAN",
	time.February:  "FEB",
	time.March:     "MAR",
	time.April:     "APR",
	time.May:       "MAY",
	time.June:      "JUN",
	time.July:      "JUL",
	time.August:    "AUG",
	time.September: "SEP",
	time.October:   "OCT",
	time.November:  "NOV",
	time.December:  "DEC",
}

// dateFormats are tried in order. The long weekday form is what the SAP
// export actually emits; the rest cover hand-edited files.
var dateFormats = []string{
	"Monday, January 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"01/02/2006",
	"01-02-06",
	"02/01/2006",
	"2006/01/02",
	"Jan 02, 2006",
	"02 Jan 2006",
}

// ConversionStats counts row-level degradations of one run.
type ConversionStats struct {
	Rows               int
	UnresolvedAccounts int
	UnresolvedSKUs     int
	UnparseableDates   int
}

// ConversionEngine converts a validated List Order table into RAW rows using
// a cross-walk built from the session's master table.
type ConversionEngine struct {
	rules *config.Rules
	log   *logrus.Logger

	// Progress, when set, is called periodically with (processed, total).
	Progress func(processed, total int)
}

func NewConversionEngine(rules *config.Rules, log *logrus.Logger) *ConversionEngine {
	return &ConversionEngine{rules: rules, log: log}
}

// Convert is the whole conversion: validate both tables, build the
// cross-walk, derive every output row. One output row per input row, input
// order preserved. Row-level failures degrade to sentinel values; only
// schema validation aborts.
func (e *ConversionEngine) Convert(master, order *models.Table) ([]models.OutputRow, *ConversionStats, error) {
	if err := ValidateMasterTable(master, e.rules); err != nil {
		return nil, nil, err
	}
	if err := ValidateOrderTable(order, e.rules); err != nil {
		return nil, nil, err
	}

	cw := BuildCrossWalk(master, e.rules)
	custCol := e.rules.OrderCustomerColumn()

	stats := &ConversionStats{Rows: order.RowCount()}
	output := make([]models.OutputRow, 0, order.RowCount())

	for i, row := range order.Rows {
		material := fixDoubledApostrophes(row[models.OrderColMaterialDesc])

		year, month := normalizeDate(row[models.OrderColPOCreationDate])
		if year == 0 {
			stats.UnparseableDates++
		}

		rawAccount := row[models.OrderColGroup]
		account := e.resolveAccount(rawAccount, row[custCol], cw)
		if account == e.rules.UnknownMarker {
			stats.UnresolvedAccounts++
		}

		sku := e.resolveSKU(material, rawAccount, account, cw)
		if sku == e.rules.UnknownMarker {
			stats.UnresolvedSKUs++
		}

		output = append(output, models.OutputRow{
			Year:         year,
			Month:        month,
			Account:      rawAccount,
			GroupAccount: account,
			SKU:          sku,
			MaterialDesc: material,
			GroupSKU:     e.classifyGroupSKU(material),
			Region:       row[models.OrderColRegionOps],
			DC:           row[models.OrderColDCName],
			POQty:        parseQuantity(row[models.OrderColPOQty]),
			DOQty:        parseQuantity(row[models.OrderColDOQty]),
			RejectCode:   row[models.OrderColRejectCode],
			SAPRejection: row[models.OrderColSAPRejection],
		})

		if e.Progress != nil && (i+1)%500 == 0 {
			e.Progress(i+1, order.RowCount())
		}
	}

	if e.Progress != nil {
		e.Progress(order.RowCount(), order.RowCount())
	}

	e.log.WithFields(logrus.Fields{
		"rows":                stats.Rows,
		"unresolved_accounts": stats.UnresolvedAccounts,
		"unresolved_skus":     stats.UnresolvedSKUs,
		"unparseable_dates":   stats.UnparseableDates,
	}).Info("conversion finished")

	return output, stats, nil
}

// resolveAccount maps the raw group code to a canonical account. The
// local-key-account sentinel ignores the group map and resolves through the
// customer cross-walk instead; any miss degrades to the UNKNOWN marker.
func (e *ConversionEngine) resolveAccount(group, customer string, cw *CrossWalk) string {
	if strings.EqualFold(strings.TrimSpace(group), e.rules.LocalKeyAccount) {
		if name, ok := cw.Customer[customerKey(customer)]; ok {
			return name
		}
		return e.rules.UnknownMarker
	}

	if account, ok := cw.GroupAccount[strings.TrimSpace(group)]; ok {
		return account
	}
	return e.rules.UnknownMarker
}

// resolveSKU maps a material description to its canonical SKU. The override
// rule catches one known bad description when either the raw group code or
// the resolved account matches the override's account code.
func (e *ConversionEngine) resolveSKU(material, rawGroup, account string, cw *CrossWalk) string {
	if material == e.rules.SKUOverride.MaterialDesc &&
		(strings.EqualFold(rawGroup, e.rules.SKUOverride.AccountCode) ||
			strings.EqualFold(account, e.rules.SKUOverride.AccountCode)) {
		return e.rules.SKUOverride.SKU
	}

	if sku, ok := cw.SKU[material]; ok {
		return sku
	}
	return e.rules.UnknownMarker
}

// classifyGroupSKU buckets a material description. Rules run in configured
// order and the first match wins; contains terms are case-insensitive,
// equals terms are exact.
func (e *ConversionEngine) classifyGroupSKU(material string) string {
	lower := strings.ToLower(material)

	for _, rule := range e.rules.GroupSKU {
		for _, term := range rule.Contains {
			if strings.Contains(lower, strings.ToLower(term)) {
				return rule.Bucket
			}
		}
		for _, term := range rule.Equals {
			if material == term {
				return rule.Bucket
			}
		}
	}
	return e.rules.GroupSKUDefault
}

// normalizeDate parses the order date into (year, 3-letter month). An
// unparseable value yields (0, "") so one bad row never fails the batch.
func normalizeDate(s string) (int, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ""
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.Year(), monthAbbrevs[t.Month()]
		}
	}
	return 0, ""
}

// parseQuantity coerces a pass-through quantity cell. A dash means zero (an
// SAP export convention); anything else unparseable stays null rather than
// becoming zero.
func parseQuantity(s string) models.NullableFloat {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.NullableFloat{}
	}
	if s == "-" {
		return models.NullableFloat{Value: 0, Valid: true}
	}

	// Remove thousand separators
	s = strings.ReplaceAll(s, ",", "")

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return models.NullableFloat{Value: v, Valid: true}
	}
	return models.NullableFloat{}
}

// fixDoubledApostrophes repairs descriptions mangled by the upstream export.
func fixDoubledApostrophes(s string) string {
	return strings.ReplaceAll(s, "''", "'")
}
