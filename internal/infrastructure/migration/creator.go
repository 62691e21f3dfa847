package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Migration is one numbered up/down pair
type Migration struct {
	Version uint
	Name    string
	HasDown bool
}

// Base returns the file name shared by the pair, without the direction
// suffix
func (m Migration) Base() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}

var fileRe = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)

// ListMigrations returns the migrations in fsys ordered by version. Files
// that do not follow the NNNNNN_name.up.sql layout are ignored.
func ListMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	byVersion := make(map[uint]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := fileRe.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		v, err := strconv.ParseUint(match[1], 10, 32)
		if err != nil {
			continue
		}
		m, ok := byVersion[uint(v)]
		if !ok {
			m = &Migration{Version: uint(v), Name: match[2]}
			byVersion[uint(v)] = m
		}
		if match[3] == "down" {
			m.HasDown = true
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// CreateMigration writes an empty up/down pair numbered after the highest
// existing version in dir
func CreateMigration(dir, name string) (Migration, error) {
	clean := sanitizeName(name)
	if clean == "" {
		return Migration{}, fmt.Errorf("invalid migration name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Migration{}, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(os.DirFS(dir))
	if err != nil {
		return Migration{}, err
	}
	next := Migration{Version: 1, Name: clean, HasDown: true}
	if n := len(existing); n > 0 {
		next.Version = existing[n-1].Version + 1
	}

	up := filepath.Join(dir, next.Base()+".up.sql")
	down := filepath.Join(dir, next.Base()+".down.sql")
	if err := os.WriteFile(up, []byte("-- "+name+"\n\n"), 0o644); err != nil {
		return Migration{}, fmt.Errorf("failed to write %s: %w", up, err)
	}
	if err := os.WriteFile(down, []byte("-- rollback: "+name+"\n\n"), 0o644); err != nil {
		_ = os.Remove(up)
		return Migration{}, fmt.Errorf("failed to write %s: %w", down, err)
	}
	return next, nil
}

// sanitizeName lowercases name and joins its alphanumeric words with
// underscores
func sanitizeName(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
	return strings.Join(words, "_")
}
