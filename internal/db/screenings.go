package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateScreening creates a screening session and returns its ID
func (db *DB) CreateScreening(ctx context.Context, jobID, candidateID uuid.UUID, mode string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO screenings (job_id, candidate_id, mode, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		jobID, candidateID, mode, ScreeningActive,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create screening: %w", err)
	}
	return id, nil
}

// GetScreening retrieves a screening by ID. Returns nil when absent.
func (db *DB) GetScreening(ctx context.Context, screeningID uuid.UUID) (*Screening, error) {
	var s Screening
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, mode, status, fit_score, summary, created_at, finished_at
		 FROM screenings WHERE id = $1`,
		screeningID,
	).Scan(&s.ID, &s.JobID, &s.CandidateID, &s.Mode, &s.Status, &s.FitScore, &s.Summary, &s.CreatedAt, &s.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get screening: %w", err)
	}
	return &s, nil
}

// FinishScreening marks the screening finished with its fit score and the
// extraction summary serialized as JSON.
func (db *DB) FinishScreening(ctx context.Context, screeningID uuid.UUID, fitScore int, summary any) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal screening summary: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE screenings
		 SET status = $1, fit_score = $2, summary = $3, finished_at = NOW()
		 WHERE id = $4`,
		ScreeningFinished, fitScore, summaryJSON, screeningID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish screening: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening not found: %s", screeningID)
	}
	return nil
}

// SaveSparcItems replaces the SPARC evidence rows for a screening.
func (db *DB) SaveSparcItems(ctx context.Context, screeningID uuid.UUID, items []SparcRow) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM sparc_items WHERE screening_id = $1`, screeningID); err != nil {
		return fmt.Errorf("failed to clear sparc items: %w", err)
	}
	for _, item := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO sparc_items
			 (screening_id, anchor_snippet, situation, problem, action, result, calibration, score, tags)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			screeningID, item.AnchorSnippet, item.Situation, item.Problem,
			item.Action, item.Result, item.Calibration, item.Score, item.Tags,
		)
		if err != nil {
			return fmt.Errorf("failed to save sparc item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit sparc items: %w", err)
	}
	return nil
}

// ListSparcItems retrieves the SPARC evidence rows for a screening in
// creation order.
func (db *DB) ListSparcItems(ctx context.Context, screeningID uuid.UUID) ([]SparcRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, screening_id, anchor_snippet, situation, problem, action, result, calibration, score, tags, created_at
		 FROM sparc_items WHERE screening_id = $1 ORDER BY created_at ASC`,
		screeningID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sparc items: %w", err)
	}
	defer rows.Close()

	var items []SparcRow
	for rows.Next() {
		var item SparcRow
		if err := rows.Scan(&item.ID, &item.ScreeningID, &item.AnchorSnippet, &item.Situation,
			&item.Problem, &item.Action, &item.Result, &item.Calibration,
			&item.Score, &item.Tags, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sparc item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Reset wipes all screening data. Used by the admin reset endpoint before
// reseeding the demo dataset.
func (db *DB) Reset(ctx context.Context) error {
	_, err := db.pool.Exec(ctx,
		`TRUNCATE jobs, candidates, screenings, qa_turns, sparc_items, search_index CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	return nil
}
