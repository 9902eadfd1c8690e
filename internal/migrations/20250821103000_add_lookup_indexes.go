package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upAddLookupIndexes, downAddLookupIndexes)
}

func upAddLookupIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE INDEX posts_status_idx ON posts (status);
	CREATE INDEX scheduled_posts_due_idx ON scheduled_posts (status, scheduled_date);
	`)
	return err
}

func downAddLookupIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP INDEX scheduled_posts_due_idx;
	DROP INDEX posts_status_idx;
	`)
	return err
}
