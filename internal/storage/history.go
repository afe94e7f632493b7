package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
)

// Run is one executed organization plan.
type Run struct {
	StartedAt      time.Time
	ID             int64
	TotalFiles     int
	FoldersCreated int
	FilesMoved     int
	Errors         int
}

// RecordRun stores an executed plan's tally along with the per-file results.
func (s *SQLiteStorage) RecordRun(ctx context.Context, results []model.ClassificationResult, foldersCreated, filesMoved, errorCount int) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (total_files, folders_created, files_moved, errors) VALUES (?, ?, ?, ?)`,
		len(results), foldersCreated, filesMoved, errorCount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_results (run_id, file_id, file_name, folder, confidence, source, reasoning)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range results {
		if _, err := stmt.ExecContext(ctx, runID, r.FileID, r.FileName, r.SuggestedFolder,
			string(r.Confidence), string(r.Source), r.Reasoning); err != nil {
			return 0, fmt.Errorf("failed to insert result for %s: %w", r.FileID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, total_files, folders_created, files_moved, errors
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.TotalFiles, &r.FoldersCreated, &r.FilesMoved, &r.Errors); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// RunResults returns the per-file results recorded for a run.
func (s *SQLiteStorage) RunResults(ctx context.Context, runID int64) ([]model.ClassificationResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_id, file_name, folder, confidence, source, reasoning
		 FROM run_results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.ClassificationResult
	for rows.Next() {
		var r model.ClassificationResult
		var confidence, source string
		if err := rows.Scan(&r.FileID, &r.FileName, &r.SuggestedFolder, &confidence, &source, &r.Reasoning); err != nil {
			return nil, fmt.Errorf("failed to scan run result: %w", err)
		}
		r.Confidence = model.Confidence(confidence)
		r.Source = model.DecisionSource(source)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run results: %w", err)
	}

	return results, nil
}
