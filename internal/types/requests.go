package types

// CreateJobRequest creates a job from inline text or a posting URL.
type CreateJobRequest struct {
	Title  string `json:"title" validate:"required"`
	JDText string `json:"jd_text" validate:"required_without=JDURL"`
	JDURL  string `json:"jd_url" validate:"omitempty,url"`
}

// CreateCandidateRequest creates a candidate profile.
type CreateCandidateRequest struct {
	Name   string `json:"name" validate:"required"`
	CVText string `json:"cv_text" validate:"required"`
}

// CreateScreeningRequest binds a job to a candidate.
type CreateScreeningRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid"`
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	Mode        string `json:"mode" validate:"omitempty,oneof=chat manual"`
}

// AppendTurnRequest appends one utterance to a screening session.
type AppendTurnRequest struct {
	Role    string `json:"role" validate:"required,oneof=assistant candidate system"`
	Content string `json:"content" validate:"required"`
}

// UpdateConfigRequest replaces the scoring configuration.
type UpdateConfigRequest struct {
	BackendWeight    float64 `json:"backend_weight" validate:"gte=0"`
	LeadershipWeight float64 `json:"leadership_weight" validate:"gte=0"`
	ScalingWeight    float64 `json:"scaling_weight" validate:"gte=0"`
	AdvanceThreshold int     `json:"advance_threshold" validate:"gt=0,lte=100"`
	HoldThreshold    int     `json:"hold_threshold" validate:"gt=0,lte=100"`
}
