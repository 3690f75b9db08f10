package postgres

import (
	"database/sql"
	_ "embed"

	"github.com/pkg/errors"
)

//go:embed schema.sql
var schema string

// RunMigrations creates the games table if it does not exist yet
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "failed to execute schema.sql")
	}
	return nil
}
