package bulk

import (
	bulkfile "github.com/jeenmata/impex/internal/infrastructure/bulk"
)

// ValidateRequest is an uploaded file waiting for validation
type ValidateRequest struct {
	Entity     string
	FileName   string
	Data       []byte
	UploadedBy string
}

// ImportResult summarizes an import run
type ImportResult struct {
	SessionID     string              `json:"session_id"`
	Entity        bulkfile.EntityType `json:"entity"`
	ImportedCount int                 `json:"imported_count"`
	SkippedRows   int                 `json:"skipped_rows"`
	Errors        []bulkfile.RowError `json:"errors,omitempty"`
}

func (r *ImportResult) addRowError(row int, err error) {
	r.SkippedRows++
	r.Errors = append(r.Errors, bulkfile.RowError{
		Row:     row,
		Code:    ErrCodeInvalidRow,
		Message: err.Error(),
	})
}

// TemplateFile is a rendered template download
type TemplateFile struct {
	FileName    string
	ContentType string
	Data        []byte
}
