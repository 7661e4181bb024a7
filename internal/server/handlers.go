package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/screening-agent/internal/db"
	"github.com/jonathan/screening-agent/internal/fit"
	"github.com/jonathan/screening-agent/internal/ingestion"
	"github.com/jonathan/screening-agent/internal/rag"
	"github.com/jonathan/screening-agent/internal/seed"
	"github.com/jonathan/screening-agent/internal/types"
)

// decodeAndValidate decodes the request body and runs struct validation.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := s.validator.Struct(dst); err != nil {
		return &ErrValidation{Field: "body", Message: extractValidationErrors(err)}
	}
	return nil
}

// extractValidationErrors flattens validator errors to one message.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var parts []string
		for _, fe := range validationErrors {
			parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}

// pathID parses the {id} path segment as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

// handleCreateJob creates a job posting from inline text or by ingesting a
// posting URL, and indexes the text for retrieval.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jdText := req.JDText
	if jdText == "" {
		fetched, err := ingestion.FetchJobText(r.Context(), req.JDURL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, err.Error())
			return
		}
		jdText = fetched
	}

	jobID, err := s.db.CreateJob(r.Context(), req.Title, jdText, req.JDURL)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.db.IndexContent(r.Context(), rag.OwnerJob, jobID, jdText); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": jobID.String()})
}

// handleCreateCandidate stores a candidate profile and indexes the resume.
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCandidateRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidateID, err := s.db.CreateCandidate(r.Context(), req.Name, req.CVText)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.db.IndexContent(r.Context(), rag.OwnerCandidate, candidateID, req.CVText); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": candidateID.String()})
}

// handleCreateScreening binds a job to a candidate in a new session.
func (s *Server) handleCreateScreening(w http.ResponseWriter, r *http.Request) {
	var req types.CreateScreeningRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jobID, _ := uuid.Parse(req.JobID)
	candidateID, _ := uuid.Parse(req.CandidateID)

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("job not found: %s", jobID))
		return
	}
	candidate, err := s.db.GetCandidate(r.Context(), candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("candidate not found: %s", candidateID))
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = "chat"
	}
	screeningID, err := s.db.CreateScreening(r.Context(), jobID, candidateID, mode)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": screeningID.String()})
}

// screeningView is the full read model of one screening session.
type screeningView struct {
	Screening *db.Screening `json:"screening"`
	Job       *db.Job       `json:"job"`
	Candidate *db.Candidate `json:"candidate"`
	Turns     []db.Turn     `json:"turns"`
	Sparc     []db.SparcRow `json:"sparc"`
}

// handleGetScreening returns the screening with its job, candidate, turns
// in creation order, and SPARC evidence.
func (s *Server) handleGetScreening(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	screening, err := s.db.GetScreening(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if screening == nil {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("screening not found: %s", id))
		return
	}

	job, err := s.db.GetJob(r.Context(), screening.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	candidate, err := s.db.GetCandidate(r.Context(), screening.CandidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	turns, err := s.db.ListTurns(r.Context(), id, true)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	sparc, err := s.db.ListSparcItems(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, screeningView{
		Screening: screening,
		Job:       job,
		Candidate: candidate,
		Turns:     turns,
		Sparc:     sparc,
	})
}

// handleStartScreening returns the generated question plan. The plan is a
// pure recompute; starting twice yields the same list.
func (s *Server) handleStartScreening(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	questions, err := s.engine.Plan(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"questions": questions})
}

// handleAppendTurn records one utterance. Missing fields reject with a
// validation error before anything is written.
func (s *Server) handleAppendTurn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.AppendTurnRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	screening, err := s.db.GetScreening(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if screening == nil {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("screening not found: %s", id))
		return
	}

	turnID, err := s.db.AppendTurn(r.Context(), id, req.Role, req.Content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": turnID.String()})
}

// handleChat streams the next assistant turn as SSE token events. The turn
// is persisted only after the stream completes cleanly; a mid-stream
// failure emits an error event and persists nothing.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stream, err := s.engine.Begin(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	defer stream.Close()

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	for {
		token, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			sse.WriteError(err.Error())
			return
		}
		if err := sse.WriteToken(token); err != nil {
			// Client went away; abandon the stream without persisting
			return
		}
	}

	if err := stream.Commit(r.Context()); err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteDone(stream.Content())
}

// finishResponse is the result of the finish operation.
type finishResponse struct {
	FitScore       int              `json:"fit_score"`
	Recommendation string           `json:"recommendation"`
	Outcome        string           `json:"outcome"`
	Extraction     types.Extraction `json:"extraction"`
}

// handleFinishScreening extracts transcript signals, computes the weighted
// fit score with the stored weights, and persists the summary.
func (s *Server) handleFinishScreening(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	screening, err := s.db.GetScreening(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if screening == nil {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("screening not found: %s", id))
		return
	}
	if screening.Status == db.ScreeningFinished {
		s.errorResponse(w, http.StatusConflict, fmt.Sprintf("screening already finished: %s", id))
		return
	}

	turns, err := s.db.ListTurns(r.Context(), id, true)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ext, outcome := s.extractor.Extract(r.Context(), formatTranscript(turns))

	appCfg, err := s.db.GetAppConfig(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	weights := fit.Weights{
		Backend:    appCfg.BackendWeight,
		Leadership: appCfg.LeadershipWeight,
		Scaling:    appCfg.ScalingWeight,
	}
	score := fit.ComputeWeightedFit(ext.Sparc, weights)

	rows := make([]db.SparcRow, 0, len(ext.Sparc))
	for _, item := range ext.Sparc {
		rows = append(rows, db.SparcRow{
			AnchorSnippet: item.AnchorSnippet,
			Situation:     item.Situation,
			Problem:       item.Problem,
			Action:        item.Action,
			Result:        item.Result,
			Calibration:   item.Calibration,
			Score:         item.Score,
			Tags:          item.Tags,
		})
	}
	if err := s.db.SaveSparcItems(r.Context(), id, rows); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.db.FinishScreening(r.Context(), id, score, ext); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, finishResponse{
		FitScore:       score,
		Recommendation: recommend(score, appCfg.AdvanceThreshold, appCfg.HoldThreshold),
		Outcome:        string(outcome),
		Extraction:     ext,
	})
}

// handleGetConfig returns the scoring configuration.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.db.GetAppConfig(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, cfg)
}

// handleUpdateConfig replaces the scoring configuration. Admin only.
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateConfigRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	err := s.db.UpdateAppConfig(r.Context(), db.AppConfig{
		BackendWeight:    req.BackendWeight,
		LeadershipWeight: req.LeadershipWeight,
		ScalingWeight:    req.ScalingWeight,
		AdvanceThreshold: req.AdvanceThreshold,
		HoldThreshold:    req.HoldThreshold,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleReset wipes all data and reseeds the demo dataset. Admin only.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Reset(r.Context()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	result, err := seed.Run(r.Context(), s.db)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// formatTranscript renders the turn log as "role: content" lines.
func formatTranscript(turns []db.Turn) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// recommend maps a fit score onto the advance/hold/reject thresholds.
func recommend(score, advance, hold int) string {
	switch {
	case score >= advance:
		return "advance"
	case score >= hold:
		return "hold"
	default:
		return "reject"
	}
}
