package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AppendTurn appends one turn to a screening session. Turns are never
// updated or deleted.
func (db *DB) AppendTurn(ctx context.Context, screeningID uuid.UUID, role, content string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO qa_turns (screening_id, role, content)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		screeningID, role, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to append turn: %w", err)
	}
	return id, nil
}

// ListTurns retrieves all turns of a screening ordered by creation time.
func (db *DB) ListTurns(ctx context.Context, screeningID uuid.UUID, ascending bool) ([]Turn, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, screening_id, role, content, created_at
		 FROM qa_turns WHERE screening_id = $1 ORDER BY created_at `+order,
		screeningID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.ScreeningID, &t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}
