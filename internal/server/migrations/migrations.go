// Package migrations embeds the goose SQL migrations for each supported
// dialect. The users table matches the schema the service has always used,
// so an existing database is adopted as-is.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// Postgres holds migrations for the pgx dialect, rooted at ".".
var Postgres = sub(postgresFS, "postgres")

// SQLite holds migrations for the sqlite3 dialect, rooted at ".".
var SQLite = sub(sqliteFS, "sqlite")

func sub(fsys embed.FS, dir string) fs.FS {
	s, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return s
}
