package bulk

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    Format
		wantErr error
	}{
		{"csv", "products.csv", FormatCSV, nil},
		{"upper case json", "BRANDS.JSON", FormatJSON, nil},
		{"xlsx", "shipments.xlsx", FormatXLSX, nil},
		{"legacy excel", "old.xls", "", ErrLegacyExcel},
		{"text", "notes.txt", "", ErrUnsupportedFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.file)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var fe *FileError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, ErrCodeUnsupportedType, fe.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCSV(t *testing.T) {
	t.Run("strips BOM and normalizes headers", func(t *testing.T) {
		data := "\xEF\xBB\xBF Name ,BRAND\nDrill,FastDrill\n"
		records, err := ParseCSV(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Drill", records[0].Get("name"))
		assert.Equal(t, "FastDrill", records[0].Get("brand"))
		assert.Equal(t, 2, records[0].Row)
	})

	t.Run("keeps quoted commas", func(t *testing.T) {
		data := "name,images\nDrill,\"a.jpg, b.jpg\"\n"
		records, err := ParseCSV(strings.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "a.jpg, b.jpg", records[0].Get("images"))
	})

	t.Run("skips blank rows and pads short rows", func(t *testing.T) {
		data := "name,brand,category\nDrill\n,,\nSaw,Spider,Tools\n"
		records, err := ParseCSV(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "", records[0].Get("brand"))
		assert.Equal(t, 4, records[1].Row)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		_, err := ParseCSV(bytes.NewReader([]byte{'n', 'a', 0xff, 0xfe, '\n', 'x'}))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})
}

func TestParseJSON(t *testing.T) {
	t.Run("array of objects", func(t *testing.T) {
		data := `[{"name":"Drill","estimated_price_npr":5000,"featured":true,"images":["a.jpg","b.jpg"]},{"name":"Saw","estimated_price_npr":12.5}]`
		records, err := ParseJSON([]byte(data))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "5000", records[0].Get("estimated_price_npr"))
		assert.Equal(t, "true", records[0].Get("featured"))
		assert.Equal(t, "a.jpg,b.jpg", records[0].Get("images"))
		assert.Equal(t, "12.5", records[1].Get("estimated_price_npr"))
		assert.Equal(t, 2, records[1].Row)
	})

	t.Run("single object", func(t *testing.T) {
		records, err := ParseJSON([]byte(`{"Name":"Gorkha"}`))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Gorkha", records[0].Get("name"))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseJSON([]byte(`[{"name":}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON format")
	})
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Tracking_Number", "origin_country"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"JMI-1", "China"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"JMI-2", "India"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err := ParseXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "JMI-1", records[0].Get("tracking_number"))
	assert.Equal(t, 4, records[1].Row)
}

func TestParse(t *testing.T) {
	t.Run("size limit", func(t *testing.T) {
		_, err := Parse("big.csv", bytes.Repeat([]byte("a"), 11), 10)
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("zero records", func(t *testing.T) {
		_, err := Parse("empty.json", []byte(`[]`), 0)
		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("header only csv", func(t *testing.T) {
		_, err := Parse("header.csv", []byte("name,brand\n"), 0)
		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("xls rejected", func(t *testing.T) {
		_, err := Parse("legacy.xls", []byte("x"), 0)
		assert.ErrorIs(t, err, ErrLegacyExcel)
	})
}

func TestColumns(t *testing.T) {
	records := []Record{
		{Values: map[string]string{"b": "1", "a": "2"}},
		{Values: map[string]string{"c": "3"}},
	}
	assert.Equal(t, []string{"a", "b", "c"}, Columns(records))
}
