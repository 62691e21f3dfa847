package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add brands table", "add_brands_table"},
		{"Add-Brands-Table", "add_brands_table"},
		{"ADD__ORDER__INDEX", "add_order_index"},
		{"Shipments 2024", "shipments_2024"},
		{"   spaces   ", "spaces"},
		{"eta.date!", "eta_date"},
		{"_leading_and_trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_orders.up.sql":     {Data: []byte("CREATE TABLE orders ();")},
		"000002_orders.down.sql":   {Data: []byte("DROP TABLE orders;")},
		"000001_catalog.up.sql":    {Data: []byte("CREATE TABLE products ();")},
		"000010_visits.up.sql":     {Data: []byte("CREATE TABLE page_visits ();")},
		"README.md":                {Data: []byte("notes")},
		"notes.sql":                {Data: []byte("-- scratch")},
		"archive/000003_x.up.sql":  {Data: []byte("-- nested")},
		"000004_Bad-Name.up.sql":   {Data: []byte("-- ignored")},
		"000001_catalog.down.sql":  {Data: []byte("DROP TABLE products;")},
		"000010_visits.down.sqlx":  {Data: []byte("-- wrong suffix")},
		"000005_settings.down.sql": {Data: []byte("-- down only")},
	}

	got, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []Migration{
		{Version: 1, Name: "catalog", HasDown: true},
		{Version: 2, Name: "orders", HasDown: true},
		{Version: 5, Name: "settings", HasDown: true},
		{Version: 10, Name: "visits", HasDown: false},
	}, got)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	got, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "absent")))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	first, err := CreateMigration(dir, "Add brand logo")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, "000001_add_brand_logo", first.Base())

	up, err := os.ReadFile(filepath.Join(dir, "000001_add_brand_logo.up.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add brand logo")
	assert.FileExists(t, filepath.Join(dir, "000001_add_brand_logo.down.sql"))

	second, err := CreateMigration(dir, "index orders by status")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	all, err := ListMigrations(os.DirFS(dir))
	require.NoError(t, err)
	assert.Equal(t, []Migration{first, second}, all)
}

func TestCreateMigration_InvalidName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!")
	assert.Error(t, err)
}
