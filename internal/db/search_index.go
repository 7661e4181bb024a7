package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// IndexContent inserts one content blob into the full-text index under the
// given owner category.
func (db *DB) IndexContent(ctx context.Context, ownerType string, ownerID uuid.UUID, content string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO search_index (owner_type, owner_id, content) VALUES ($1, $2, $3)`,
		ownerType, ownerID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to index %s content: %w", ownerType, err)
	}
	return nil
}

// Search runs a phrase-quoted full-text match restricted to one owner
// category, ordered by native relevance rank.
func (db *DB) Search(ctx context.Context, ownerType, term string, limit int) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT content FROM search_index
		 WHERE owner_type = $1 AND content_tsv @@ phraseto_tsquery('english', $2)
		 ORDER BY ts_rank(content_tsv, phraseto_tsquery('english', $2)) DESC
		 LIMIT $3`,
		ownerType, term, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}
	defer rows.Close()
	return scanContent(rows)
}

// Recent returns the most recently indexed content for an owner category
// with no relevance filtering.
func (db *DB) Recent(ctx context.Context, ownerType string, limit int) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT content FROM search_index
		 WHERE owner_type = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		ownerType, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent content: %w", err)
	}
	defer rows.Close()
	return scanContent(rows)
}

type contentRows interface {
	Next() bool
	Scan(dest ...any) error
}

func scanContent(rows contentRows) ([]string, error) {
	var out []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		out = append(out, content)
	}
	return out, nil
}
