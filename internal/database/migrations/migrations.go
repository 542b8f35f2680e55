// Package migrations registers the schema migrations run at startup.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations() //nolint:gochecknoglobals // -
