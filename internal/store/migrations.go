package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}
	return nil
}

func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			graded_at   TEXT NOT NULL,
			project     TEXT NOT NULL,
			all_passing BOOLEAN NOT NULL,
			points      REAL NOT NULL,
			max_points  REAL NOT NULL,
			policy_hash TEXT NOT NULL,
			version     TEXT NOT NULL,
			report_json TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS run_results (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL REFERENCES runs(id),
			position    INTEGER NOT NULL,
			category    TEXT NOT NULL,
			title       TEXT NOT NULL,
			passes      BOOLEAN NOT NULL,
			points      REAL NOT NULL,
			max_points  REAL NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_project ON runs(project, id)`,
		`CREATE INDEX IF NOT EXISTS idx_run_results_run ON run_results(run_id, position)`,

		`DELETE FROM schema_version`,
		fmt.Sprintf(`INSERT INTO schema_version (version) VALUES (%d)`, currentSchemaVersion),
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
