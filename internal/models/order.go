package models

// Normalized List Order extract column names.
const (
	OrderColPOCreationDate = "PO_CREATION_DATE"
	OrderColGroup          = "GROUP"
	OrderColMaterialDesc   = "MATERIAL_DESC"
	OrderColShipTo         = "SHIP_TO"
	OrderColCustName       = "CUST_NAME"
	OrderColRegionOps      = "REGION_OPS"
	OrderColDCName         = "DC_NAME_SL_FORECAST"
	OrderColPOQty          = "PO_QTY_CAP"
	OrderColDOQty          = "DO_QTY_NETT"
	OrderColRejectCode     = "REJECT_CODE"
	OrderColSAPRejection   = "SAP_REJECTION"
)

// OrderFilenameMarker must appear in the uploaded extract's filename.
// Checked before any parsing is attempted.
const OrderFilenameMarker = "List Order"
