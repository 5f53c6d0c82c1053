package models

import "time"

// Conversion session statuses.
const (
	ConversionStatusUploaded   = "uploaded"
	ConversionStatusProcessing = "processing"
	ConversionStatusCompleted  = "completed"
	ConversionStatusFailed     = "failed"
)

// ConversionSession tracks one List Order upload through conversion and
// download. Like the master working copy it lives in Redis with a TTL.
type ConversionSession struct {
	Code       string `json:"code"`
	MasterCode string `json:"master_code"`
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`
	Format     string `json:"format"` // "xlsx" or "csv", mirrors the upload
	TotalRows  int    `json:"total_rows"`
	Status     string `json:"status"`
	OutputPath string `json:"output_path,omitempty"`
	Error      string `json:"error,omitempty"`

	// Row-level degradations, for the human reviewer.
	UnresolvedAccounts int `json:"unresolved_accounts"`
	UnresolvedSKUs     int `json:"unresolved_skus"`
	UnparseableDates   int `json:"unparseable_dates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
