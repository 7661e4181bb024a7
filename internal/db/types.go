package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Screening statuses.
const (
	ScreeningActive   = "active"
	ScreeningFinished = "finished"
)

// Job is a stored job posting.
type Job struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	JDText    string    `json:"jd_text"`
	SourceURL string    `json:"source_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Candidate is a stored candidate profile.
type Candidate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CVText    string    `json:"cv_text"`
	CreatedAt time.Time `json:"created_at"`
}

// Screening is one screening session binding a job to a candidate. Summary
// holds the extraction result as JSON once the session is finished.
type Screening struct {
	ID          uuid.UUID       `json:"id"`
	JobID       uuid.UUID       `json:"job_id"`
	CandidateID uuid.UUID       `json:"candidate_id"`
	Mode        string          `json:"mode"`
	Status      string          `json:"status"`
	FitScore    *int            `json:"fit_score,omitempty"`
	Summary     json.RawMessage `json:"summary,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	FinishedAt  *time.Time      `json:"finished_at,omitempty"`
}

// Turn is one stored utterance of a screening session. Turns are append-only
// and ordered by creation time.
type Turn struct {
	ID          uuid.UUID `json:"id"`
	ScreeningID uuid.UUID `json:"screening_id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// SparcRow is a persisted SPARC evidence item.
type SparcRow struct {
	ID            uuid.UUID `json:"id"`
	ScreeningID   uuid.UUID `json:"screening_id"`
	AnchorSnippet string    `json:"anchor_snippet"`
	Situation     string    `json:"situation"`
	Problem       string    `json:"problem"`
	Action        string    `json:"action"`
	Result        string    `json:"result"`
	Calibration   string    `json:"calibration"`
	Score         float64   `json:"score"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
}

// AppConfig is the single scoring configuration row read at scoring time.
type AppConfig struct {
	BackendWeight    float64   `json:"backend_weight"`
	LeadershipWeight float64   `json:"leadership_weight"`
	ScalingWeight    float64   `json:"scaling_weight"`
	AdvanceThreshold int       `json:"advance_threshold"`
	HoldThreshold    int       `json:"hold_threshold"`
	UpdatedAt        time.Time `json:"updated_at"`
}
