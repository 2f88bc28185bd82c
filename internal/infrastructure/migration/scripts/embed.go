// Package scripts holds the versioned PostgreSQL migrations, in goose and
// golang-migrate layouts, embedded into the binary.
package scripts

import "embed"

// Goose holds goose/NNNNN_name.sql files.
//
//go:embed goose/*.sql
var Goose embed.FS

// Migrate holds migrate/NNNNNN_name.{up,down}.sql pairs.
//
//go:embed migrate/*.sql
var Migrate embed.FS

const (
	GooseDir   = "goose"
	MigrateDir = "migrate"
)
