package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upInit, downInit)
}

func upInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE assets (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		mime_type VARCHAR NOT NULL,
		byte_length BIGINT NOT NULL,
		data BYTEA NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE posts (
		id VARCHAR PRIMARY KEY,
		day INTEGER NOT NULL,
		caption TEXT NOT NULL,
		hook TEXT NOT NULL DEFAULT '',
		cta TEXT NOT NULL DEFAULT '',
		pillar VARCHAR NOT NULL DEFAULT '',
		format VARCHAR NOT NULL DEFAULT '',
		asset_id VARCHAR NOT NULL DEFAULT '',
		status VARCHAR NOT NULL DEFAULT 'draft',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT posts_day_unique UNIQUE (day)
	);

	CREATE TABLE scheduled_posts (
		id VARCHAR PRIMARY KEY,
		post_id VARCHAR NOT NULL,
		scheduled_date TIMESTAMPTZ NOT NULL,
		status VARCHAR NOT NULL DEFAULT 'draft',
		platform VARCHAR NOT NULL DEFAULT 'linkedin',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT scheduled_posts_post_id_unique UNIQUE (post_id)
	);
	`)
	return err
}

func downInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE scheduled_posts;
	DROP TABLE posts;
	DROP TABLE assets;
	`)
	return err
}
