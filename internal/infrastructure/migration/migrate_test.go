package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/jeenmata/impex/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestEmbedded_Sequence(t *testing.T) {
	migrations, err := ListMigrations(Embedded())
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i, m := range migrations {
		assert.Equal(t, uint(i+1), m.Version, "versions must be contiguous")
		assert.True(t, m.HasDown, "%s has no down migration", m.Base())
	}
}

// TestEmbedded_CoversModels keeps the SQL schema in step with the tables
// AutoMigrate would create
func TestEmbedded_CoversModels(t *testing.T) {
	var up strings.Builder
	err := fs.WalkDir(Embedded(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".up.sql") {
			return err
		}
		data, err := fs.ReadFile(Embedded(), path)
		if err != nil {
			return err
		}
		up.Write(data)
		return nil
	})
	require.NoError(t, err)

	for _, m := range models.All() {
		tabler, ok := m.(schema.Tabler)
		require.True(t, ok, "%T has no TableName", m)
		assert.Contains(t, up.String(), "CREATE TABLE IF NOT EXISTS "+tabler.TableName()+" (")
	}
}

func TestWithDir(t *testing.T) {
	var o options
	WithDir("/tmp/migrations")(&o)
	assert.Equal(t, "/tmp/migrations", o.dir)

	dir := t.TempDir()
	_, err := CreateMigration(dir, "add brand logo")
	require.NoError(t, err)
	src, err := sourceDriver([]Option{WithDir(dir)})
	require.NoError(t, err)
	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}
