// Package migrations holds the postgres schema, applied in file name order by cmd/migrate.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed postgres/*.sql
var files embed.FS

// Migration is one schema script
type Migration struct {
	Name string
	SQL  string
}

// Postgres returns the postgres migrations sorted by name
func Postgres() ([]Migration, error) {
	names, err := fs.Glob(files, "postgres/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		data, err := files.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: name, SQL: string(data)})
	}
	return out, nil
}
