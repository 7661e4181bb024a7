package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateJob stores a job posting and returns its ID
func (db *DB) CreateJob(ctx context.Context, title, jdText, sourceURL string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, jd_text, source_url)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id`,
		title, jdText, sourceURL,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job by ID. Returns nil when the job does not exist.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	var job Job
	var sourceURL *string
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, jd_text, source_url, created_at FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.Title, &job.JDText, &sourceURL, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if sourceURL != nil {
		job.SourceURL = *sourceURL
	}
	return &job, nil
}

// CreateCandidate stores a candidate profile and returns its ID
func (db *DB) CreateCandidate(ctx context.Context, name, cvText string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, cv_text) VALUES ($1, $2) RETURNING id`,
		name, cvText,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return id, nil
}

// GetCandidate retrieves a candidate by ID. Returns nil when absent.
func (db *DB) GetCandidate(ctx context.Context, candidateID uuid.UUID) (*Candidate, error) {
	var c Candidate
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, cv_text, created_at FROM candidates WHERE id = $1`,
		candidateID,
	).Scan(&c.ID, &c.Name, &c.CVText, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}
