// Package rag retrieves bounded grounding context for the dialogue engine
// from a full-text content index. The three owner categories are queried
// independently and never cross-contaminate.
package rag

import (
	"context"
	"fmt"
	"strings"
)

// Owner categories in the content index.
const (
	OwnerJob       = "job"
	OwnerCandidate = "candidate"
	OwnerQuestion  = "question"
)

// Default per-category snippet caps.
const (
	defaultJobLimit      = 4
	defaultCVLimit       = 3
	defaultQuestionLimit = 3
)

// Index is the full-text search surface the retriever reads from. Search
// returns content in the index's native relevance order; Recent returns the
// most recently indexed content with no relevance filtering.
type Index interface {
	Search(ctx context.Context, ownerType, term string, limit int) ([]string, error)
	Recent(ctx context.Context, ownerType string, limit int) ([]string, error)
}

// Context holds the three bounded snippet lists handed to the dialogue
// generator.
type Context struct {
	JD        []string `json:"jd"`
	CV        []string `json:"cv"`
	Questions []string `json:"qs"`
}

// Retriever queries the content index per owner category with fixed caps.
type Retriever struct {
	index         Index
	jobLimit      int
	cvLimit       int
	questionLimit int
}

// NewRetriever creates a retriever with the default 4/3/3 caps.
func NewRetriever(index Index) *Retriever {
	return &Retriever{
		index:         index,
		jobLimit:      defaultJobLimit,
		cvLimit:       defaultCVLimit,
		questionLimit: defaultQuestionLimit,
	}
}

// Retrieve sanitizes the query and fetches each category independently. An
// empty sanitized term switches to the recency fallback; that is a defined
// path, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) (Context, error) {
	term := SanitizeQuery(query)

	jd, err := r.fetch(ctx, OwnerJob, term, r.jobLimit)
	if err != nil {
		return Context{}, err
	}
	cv, err := r.fetch(ctx, OwnerCandidate, term, r.cvLimit)
	if err != nil {
		return Context{}, err
	}
	qs, err := r.fetch(ctx, OwnerQuestion, term, r.questionLimit)
	if err != nil {
		return Context{}, err
	}

	return Context{JD: jd, CV: cv, Questions: qs}, nil
}

func (r *Retriever) fetch(ctx context.Context, ownerType, term string, limit int) ([]string, error) {
	if term == "" {
		rows, err := r.index.Recent(ctx, ownerType, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch recent %s content: %w", ownerType, err)
		}
		return rows, nil
	}
	rows, err := r.index.Search(ctx, ownerType, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s content: %w", ownerType, err)
	}
	return rows, nil
}

// ftsSpecials are characters with syntactic meaning to the full-text query
// parser; they become spaces rather than being escaped, so adjacent tokens
// stay separate terms.
const ftsSpecials = ":^*\"'(){}[]"

// SanitizeQuery lowercases the query, replaces full-text operator characters
// with spaces, and collapses runs of whitespace to single spaces.
func SanitizeQuery(query string) string {
	lowered := strings.ToLower(query)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if strings.ContainsRune(ftsSpecials, r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
