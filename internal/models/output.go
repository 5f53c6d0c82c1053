package models

import "encoding/json"

// OutputColumns is the RAW file header, exact names and order. Downstream
// consumers key off these names, so they are part of the external contract.
var OutputColumns = []string{
	"year", "month", "account", "group_account", "sku", "material_desc",
	"group_sku", "region", "dc", "po_qty", "do_qty", "reject_code",
	"sap_rejection",
}

// NullableFloat carries a pass-through quantity. A cell that cannot be
// coerced to a number stays invalid (exported as an empty cell), it does not
// become zero and does not abort the row.
type NullableFloat struct {
	Value float64
	Valid bool
}

func (n NullableFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Value, n.Valid = 0, false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// OutputRow is one RAW row. Year 0 and empty month mean the order date could
// not be parsed; the UNKNOWN marker flags unresolved lookups. Both are
// deliberate, searchable values rather than errors.
type OutputRow struct {
	Year         int           `json:"year"`
	Month        string        `json:"month"`
	Account      string        `json:"account"`
	GroupAccount string        `json:"group_account"`
	SKU          string        `json:"sku"`
	MaterialDesc string        `json:"material_desc"`
	GroupSKU     string        `json:"group_sku"`
	Region       string        `json:"region"`
	DC           string        `json:"dc"`
	POQty        NullableFloat `json:"po_qty"`
	DOQty        NullableFloat `json:"do_qty"`
	RejectCode   string        `json:"reject_code"`
	SAPRejection string        `json:"sap_rejection"`
}
