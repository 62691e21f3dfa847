package bulk

import (
	"testing"

	"github.com/jeenmata/impex/internal/domain/shared"
	bulkfile "github.com/jeenmata/impex/internal/infrastructure/bulk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandFromRecord_Integers(t *testing.T) {
	tests := []struct {
		name      string
		year      string
		sortOrder string
		wantYear  int
		wantSort  int
		wantErr   bool
	}{
		{name: "whole numbers", year: "1915", sortOrder: "4", wantYear: 1915, wantSort: 4},
		{name: "fractions truncate", year: "2001.0", sortOrder: "2.7", wantYear: 2001, wantSort: 2},
		{name: "blank cells are zero", wantYear: 0, wantSort: 0},
		{name: "year past int64 is rejected", year: "99999999999999999999", wantErr: true},
		{name: "sort order past int32 is rejected", sortOrder: "2147483648", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := bulkfile.Record{Row: 2, Values: map[string]string{
				"name":             "Makita Tools",
				"established_year": tt.year,
				"sort_order":       tt.sortOrder,
			}}
			b, err := brandFromRecord(rec)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.NewValidationError(""))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, b.EstablishedYear)
			assert.Equal(t, tt.wantSort, b.SortOrder)
		})
	}
}
