package bulk

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// DefaultMaxFileSize is the upload limit when none is configured
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Record is one row of an uploaded file. Row is the 1-based position in the
// source: the line for CSV (header is line 1), the sheet row for xlsx and the
// element index plus one for JSON.
type Record struct {
	Row    int
	Values map[string]string
}

// Get returns the trimmed value for a column
func (r Record) Get(column string) string {
	return r.Values[column]
}

// IsEmpty returns true if every value is blank
func (r Record) IsEmpty() bool {
	for _, v := range r.Values {
		if v != "" {
			return false
		}
	}
	return true
}

// Format is the detected file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file name to a supported format
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return "", fileError(ErrCodeUnsupportedType, ErrLegacyExcel)
	default:
		return "", fileError(ErrCodeUnsupportedType, ErrUnsupportedFile)
	}
}

// Parse reads an uploaded file into records. The size limit is checked
// before any parsing; maxSize <= 0 uses DefaultMaxFileSize.
func Parse(filename string, data []byte, maxSize int64) ([]Record, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if int64(len(data)) > maxSize {
		return nil, fileError(ErrCodeFileTooLarge, ErrFileTooLarge)
	}
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	var records []Record
	switch format {
	case FormatCSV:
		records, err = ParseCSV(bytes.NewReader(data))
	case FormatJSON:
		records, err = ParseJSON(data)
	case FormatXLSX:
		records, err = ParseXLSX(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fileError(ErrCodeEmptyFile, ErrNoRecords)
	}
	return records, nil
}

// ParseCSV reads a UTF-8 CSV file with an optional BOM. Header names are
// trimmed and lower-cased; blank rows are skipped.
func ParseCSV(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)

	if bom, _ := br.Peek(3); len(bom) == 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(bytes.TrimSpace(head)) == 0 {
		return nil, fileError(ErrCodeEmptyFile, ErrEmptyFile)
	}
	if !utf8.Valid(trimPartialRune(head)) {
		return nil, fileError(ErrCodeInvalidEncoding, ErrInvalidEncoding)
	}

	reader := csv.NewReader(br)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fileError(ErrCodeMissingHeader, ErrMissingHeader)
	}
	if err != nil {
		return nil, fileError(ErrCodeParsing, fmt.Errorf("read header: %w", err))
	}
	headers := normalizeHeaders(header)

	var records []Record
	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fileError(ErrCodeParsing, fmt.Errorf("CSV parsing failed at row %d: %w", line, err))
		}
		rec := recordFrom(line, headers, fields)
		if rec.IsEmpty() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseJSON accepts a single object or an array of objects. Numbers,
// booleans and arrays are rendered as the strings a CSV cell would hold.
func ParseJSON(data []byte) ([]Record, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fileError(ErrCodeEmptyFile, ErrEmptyFile)
	}

	var objects []map[string]any
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &objects); err != nil {
			return nil, fileError(ErrCodeParsing, fmt.Errorf("invalid JSON format: %w", err))
		}
	} else {
		var obj map[string]any
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fileError(ErrCodeParsing, fmt.Errorf("invalid JSON format: %w", err))
		}
		objects = []map[string]any{obj}
	}

	records := make([]Record, 0, len(objects))
	for i, obj := range objects {
		values := make(map[string]string, len(obj))
		for k, v := range obj {
			values[strings.ToLower(strings.TrimSpace(k))] = jsonCell(v)
		}
		records = append(records, Record{Row: i + 1, Values: values})
	}
	return records, nil
}

// ParseXLSX reads the first sheet of a workbook. The first row is the header.
func ParseXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fileError(ErrCodeInvalidFile, fmt.Errorf("open workbook: %w", err))
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fileError(ErrCodeEmptyFile, ErrEmptyFile)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fileError(ErrCodeParsing, fmt.Errorf("read sheet %s: %w", sheets[0], err))
	}
	if len(rows) == 0 {
		return nil, fileError(ErrCodeMissingHeader, ErrMissingHeader)
	}

	headers := normalizeHeaders(rows[0])
	var records []Record
	for i, fields := range rows[1:] {
		rec := recordFrom(i+2, headers, fields)
		if rec.IsEmpty() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = strings.ToLower(strings.TrimSpace(strings.Trim(h, `"`)))
	}
	return headers
}

func recordFrom(row int, headers, fields []string) Record {
	values := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(fields) {
			values[h] = strings.TrimSpace(fields[i])
		} else {
			values[h] = ""
		}
	}
	return Record{Row: row, Values: values}
}

func jsonCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := jsonCell(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// trimPartialRune drops a rune cut in half at the end of a peeked buffer
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if r, size := utf8.DecodeLastRune(b); r != utf8.RuneError || size != 1 {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

// Columns returns the sorted union of column names across records
func Columns(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r.Values {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
