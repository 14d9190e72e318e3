package importer

import "errors"

var (
	ErrHeaderMissing = errors.New("importer: csv header row is required")
	ErrInputEmpty    = errors.New("importer: csv input is empty")
)

// RowResult records one successfully imported data row. Row is the 1-based
// position among data rows (the header is not counted).
type RowResult struct {
	Row    int    `json:"row"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Status string `json:"status"`
}

// RowError records one failed data row. Failures never abort the batch.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Report is the whole-file outcome: every row lands in exactly one of the
// two lists.
type Report struct {
	Results []RowResult `json:"results"`
	Errors  []RowError  `json:"errors"`
}
