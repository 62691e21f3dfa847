package bulk

import (
	"errors"
	"fmt"
	"strings"
)

// Bulk upload error codes
const (
	ErrCodeInvalidFile     = "ERR_BULK_INVALID_FILE"
	ErrCodeEmptyFile       = "ERR_BULK_EMPTY_FILE"
	ErrCodeFileTooLarge    = "ERR_BULK_FILE_TOO_LARGE"
	ErrCodeUnsupportedType = "ERR_BULK_UNSUPPORTED_TYPE"
	ErrCodeInvalidEncoding = "ERR_BULK_INVALID_ENCODING"
	ErrCodeParsing         = "ERR_BULK_PARSING"
	ErrCodeMissingHeader   = "ERR_BULK_MISSING_HEADER"
	ErrCodeTooManyRows     = "ERR_BULK_TOO_MANY_ROWS"

	ErrCodeRequiredField = "ERR_BULK_REQUIRED_FIELD"
	ErrCodeInvalidType   = "ERR_BULK_INVALID_TYPE"
	ErrCodeInvalidEnum   = "ERR_BULK_INVALID_ENUM"
	ErrCodeInvalidRange  = "ERR_BULK_INVALID_RANGE"
	ErrCodeInvalidDate   = "ERR_BULK_INVALID_DATE"
)

var (
	// ErrEmptyFile is returned when a file has no content
	ErrEmptyFile = errors.New("file is empty")

	// ErrNoRecords is returned when a file parses to zero records
	ErrNoRecords = errors.New("no data found in file")

	// ErrInvalidEncoding is returned for files that are not UTF-8
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")

	// ErrMissingHeader is returned when a CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrFileTooLarge is returned when the file exceeds the size limit
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrLegacyExcel is returned for .xls uploads
	ErrLegacyExcel = errors.New("Excel (.xls) not supported, save the sheet as .xlsx or CSV")

	// ErrUnsupportedFile is returned for extensions other than csv, json and xlsx
	ErrUnsupportedFile = errors.New("please upload a CSV, Excel (.xlsx) or JSON file")

	// ErrUnsupportedEntityType is returned for unknown entity types
	ErrUnsupportedEntityType = errors.New("unsupported entity type")
)

// FileError is a whole-file failure with a stable code
type FileError struct {
	Code string
	Err  error
}

// Error implements the error interface
func (e *FileError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *FileError) Unwrap() error {
	return e.Err
}

func fileError(code string, err error) error {
	return &FileError{Code: code, Err: err}
}

// RowError is a problem with one field of one row
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorCollection keeps the first maxErrors row errors and counts the rest
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a collection capped at maxErrors (100 when <= 0)
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0, min(maxErrors, 16)),
		maxErrors: maxErrors,
	}
}

// Add adds an error to the collection
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// Errors returns the collected errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// TotalCount returns the number of errors seen, including dropped ones
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// HasErrors returns true if any error was added
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// IsTruncated returns true if errors were dropped because of the cap
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > ec.maxErrors
}

// String renders the collection for logs
func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no errors"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s) found", ec.totalCount)
	if ec.IsTruncated() {
		fmt.Fprintf(&sb, " (showing first %d)", ec.maxErrors)
	}
	sb.WriteString(":\n")
	for _, err := range ec.errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}
