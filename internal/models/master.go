package models

import "time"

// Normalized master table column names.
const (
	MasterColGroup            = "GROUP"
	MasterColGroupToBe        = "GROUP TO BE"
	MasterColSKU              = "SKU"
	MasterColSKUToBe          = "SKU TO BE"
	MasterColShipTo           = "SHIP_TO"
	MasterColCustName         = "CUST_NAME"
	MasterColCustomerName     = "CUSTOMER_NAME"
	MasterColCustNameToBe     = "CUST_NAME TO BE"
	MasterColCustomerNameToBe = "CUSTOMER_NAME TO BE"
)

// MasterSession is a session-scoped working copy of the master cross-walk
// table. Edits replace the table wholesale; nothing survives the session TTL.
type MasterSession struct {
	Code      string    `json:"code"`
	Filename  string    `json:"filename"`
	Table     *Table    `json:"table"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
