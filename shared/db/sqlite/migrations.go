package sqlite

import (
	"database/sql"
	"fmt"
)

// migration represents a single database migration
type migration struct {
	version int
	name    string
	up      string
}

// migrations is the ordered list of all database migrations.
// Applied versions are never re-run; append new entries instead of editing old ones.
var migrations = []migration{
	{
		version: 1,
		name:    "create_users_table",
		up: `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		version: 2,
		name:    "create_images_table",
		up: `
			CREATE TABLE IF NOT EXISTS images (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				creator_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				file TEXT NOT NULL,
				caption TEXT NOT NULL,
				location TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_images_creator_id
			ON images(creator_id);
		`,
	},
	{
		version: 3,
		name:    "create_likes_table",
		up: `
			CREATE TABLE IF NOT EXISTS likes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				creator_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				image_id INTEGER NOT NULL REFERENCES images(id) ON DELETE CASCADE,
				created_at TIMESTAMP NOT NULL,
				UNIQUE(creator_id, image_id)
			);

			CREATE INDEX IF NOT EXISTS idx_likes_image_id
			ON likes(image_id);
		`,
	},
	{
		version: 4,
		name:    "create_comments_table",
		up: `
			CREATE TABLE IF NOT EXISTS comments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				message TEXT NOT NULL,
				image_id INTEGER NOT NULL REFERENCES images(id) ON DELETE CASCADE,
				creator_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_comments_image_id
			ON comments(image_id);
		`,
	},
	{
		version: 5,
		name:    "create_notifications_table",
		up: `
			CREATE TABLE IF NOT EXISTS notifications (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				actor_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				target_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				verb TEXT NOT NULL,
				image_id INTEGER REFERENCES images(id) ON DELETE CASCADE,
				created_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_notifications_target_id
			ON notifications(target_id, created_at DESC);
		`,
	},
}

// runMigrations executes all pending migrations
func runMigrations(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	currentVersion := 0
	err = conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		if err := applyMigration(conn, m); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(conn *sql.DB, m migration) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", m.version, err)
	}

	if _, err := tx.Exec(m.up); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d (%s): %w", m.version, m.name, err)
	}

	_, err = tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		m.version,
		m.name,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", m.version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
	}

	return nil
}

// LatestVersion returns the version the schema reaches once fully migrated
func LatestVersion() int {
	return migrations[len(migrations)-1].version
}
