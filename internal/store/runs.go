package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/autograde/internal/grade"
)

// Run is one stored grading run.
type Run struct {
	ID         int64
	GradedAt   time.Time
	Project    string
	AllPassing bool
	Points     float64
	MaxPoints  float64
	PolicyHash string
	Version    string
}

// SaveRun records a report and its per-result rows, returning the run ID.
func (db *DB) SaveRun(r *grade.ResultsReport, policyHash string, at time.Time) (int64, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("store.SaveRun: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("store.SaveRun: %w", err)
	}
	res, err := tx.Exec(
		`INSERT INTO runs (graded_at, project, all_passing, points, max_points, policy_hash, version, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		at.UTC().Format(time.RFC3339), r.Project, r.AllPassing, r.Points, r.MaxPoints,
		policyHash, r.Version, string(data),
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("store.SaveRun: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("store.SaveRun: %w", err)
	}
	for i, er := range r.Results {
		if _, err := tx.Exec(
			`INSERT INTO run_results (run_id, position, category, title, passes, points, max_points)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, string(er.Category), er.Title, er.Passes, er.Points, er.MaxPoints,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("store.SaveRun: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store.SaveRun: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs first. An empty project lists all
// projects; limit <= 0 means no limit.
func (db *DB) ListRuns(project string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(
		`SELECT id, graded_at, project, all_passing, points, max_points, policy_hash, version
		FROM runs WHERE (? = '' OR project = ?) ORDER BY id DESC LIMIT ?`,
		project, project, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store.ListRuns: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var gradedAt string
		if err := rows.Scan(&r.ID, &gradedAt, &r.Project, &r.AllPassing, &r.Points, &r.MaxPoints, &r.PolicyHash, &r.Version); err != nil {
			return nil, fmt.Errorf("store.ListRuns: %w", err)
		}
		r.GradedAt, _ = time.Parse(time.RFC3339, gradedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetReport returns the full report stored for a run, or nil if the run
// does not exist.
func (db *DB) GetReport(id int64) (*grade.ResultsReport, error) {
	var data string
	err := db.conn.QueryRow("SELECT report_json FROM runs WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.GetReport: %w", err)
	}
	var r grade.ResultsReport
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("store.GetReport: %w", err)
	}
	return &r, nil
}

// ResultCounts returns how many results of a run passed and failed.
func (db *DB) ResultCounts(id int64) (passed, failed int, err error) {
	err = db.conn.QueryRow(
		`SELECT COALESCE(SUM(CASE WHEN passes THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN passes THEN 0 ELSE 1 END), 0)
		FROM run_results WHERE run_id = ?`, id,
	).Scan(&passed, &failed)
	if err != nil {
		return 0, 0, fmt.Errorf("store.ResultCounts: %w", err)
	}
	return passed, failed, nil
}
