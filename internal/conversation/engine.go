// Package conversation drives the turn-by-turn screening dialogue: per ask
// it recomputes the plan, selects the next question hint, assembles bounded
// memory and retrieved context, and streams the generated reply. The
// assistant turn is persisted only after the stream completes cleanly.
package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/screening-agent/internal/db"
	"github.com/jonathan/screening-agent/internal/llm"
	"github.com/jonathan/screening-agent/internal/plan"
	"github.com/jonathan/screening-agent/internal/prompts"
	"github.com/jonathan/screening-agent/internal/rag"
	"github.com/jonathan/screening-agent/internal/types"
)

// memoryWindow bounds how many prior turns are replayed to the generator.
const memoryWindow = 8

// TurnStore is the append-only turn log of a screening session.
type TurnStore interface {
	AppendTurn(ctx context.Context, screeningID uuid.UUID, role, content string) (uuid.UUID, error)
	ListTurns(ctx context.Context, screeningID uuid.UUID, ascending bool) ([]db.Turn, error)
}

// RecordStore reads the screening, job, and candidate records.
type RecordStore interface {
	GetScreening(ctx context.Context, id uuid.UUID) (*db.Screening, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
}

// ContextRetriever supplies grounding snippets for the system instruction.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) (rag.Context, error)
}

// Engine orchestrates one "ask next question" invocation per call. It holds
// no per-session state; two sessions never share anything through it.
type Engine struct {
	records   RecordStore
	turns     TurnStore
	retriever ContextRetriever
	client    llm.Client
	plans     *plan.Builder
}

// NewEngine assembles a conversation engine from its collaborators.
func NewEngine(records RecordStore, turns TurnStore, retriever ContextRetriever, client llm.Client, plans *plan.Builder) *Engine {
	return &Engine{
		records:   records,
		turns:     turns,
		retriever: retriever,
		client:    client,
		plans:     plans,
	}
}

// Plan recomputes the question plan for a screening. The plan is a pure
// function of the job and candidate text, so repeated calls return the same
// list.
func (e *Engine) Plan(ctx context.Context, screeningID uuid.UUID) ([]string, error) {
	_, job, candidate, err := e.loadSession(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	return e.plans.Generate(ctx, job.Title, job.JDText, candidate.CVText), nil
}

// Begin starts one dialogue turn and returns a pull-based token stream. The
// caller drives consumption and must call Commit after a clean end-of-stream
// to persist the assistant turn; abandoning the stream persists nothing.
func (e *Engine) Begin(ctx context.Context, screeningID uuid.UUID) (*TurnStream, error) {
	_, job, candidate, err := e.loadSession(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	questions := e.plans.Generate(ctx, job.Title, job.JDText, candidate.CVText)

	turns, err := e.turns.ListTurns(ctx, screeningID, true)
	if err != nil {
		return nil, err
	}

	hint := nextQuestionHint(questions, turns)
	memory := buildMemory(turns)
	ragQuery := lastCandidateUtterance(turns, hint)

	retrieved, err := e.retriever.Retrieve(ctx, ragQuery)
	if err != nil {
		return nil, err
	}

	system := prompts.Format(prompts.MustGet("interview.json", "interview-system"), map[string]string{
		"Title":           job.Title,
		"JDContext":       joinSnippets(retrieved.JD),
		"CVContext":       joinSnippets(retrieved.CV),
		"QuestionContext": joinSnippets(retrieved.Questions),
	})
	promptText := prompts.Format(prompts.MustGet("interview.json", "next-question"), map[string]string{
		"Hint": hint,
	})

	stream, err := e.client.StreamChat(ctx, llm.ChatRequest{
		System:  system,
		History: memory,
		Prompt:  promptText,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start dialogue stream: %w", err)
	}

	return &TurnStream{
		stream:      stream,
		turns:       e.turns,
		screeningID: screeningID,
	}, nil
}

// loadSession resolves the screening plus its job and candidate records. The
// two record reads are independent and run concurrently.
func (e *Engine) loadSession(ctx context.Context, screeningID uuid.UUID) (*db.Screening, *db.Job, *db.Candidate, error) {
	screening, err := e.records.GetScreening(ctx, screeningID)
	if err != nil {
		return nil, nil, nil, err
	}
	if screening == nil {
		return nil, nil, nil, &NotFoundError{Kind: "screening", ID: screeningID}
	}

	var (
		job       *db.Job
		candidate *db.Candidate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		job, err = e.records.GetJob(gctx, screening.JobID)
		return err
	})
	g.Go(func() error {
		var err error
		candidate, err = e.records.GetCandidate(gctx, screening.CandidateID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	if job == nil {
		return nil, nil, nil, &NotFoundError{Kind: "job", ID: screening.JobID}
	}
	if candidate == nil {
		return nil, nil, nil, &NotFoundError{Kind: "candidate", ID: screening.CandidateID}
	}
	return screening, job, candidate, nil
}

// nextQuestionHint picks plan[min(askedCount, len(plan)-1)]. Once the plan
// is exhausted the final question repeats; the index never runs past the
// plan.
func nextQuestionHint(questions []string, turns []db.Turn) string {
	if len(questions) == 0 {
		return ""
	}
	asked := 0
	for _, t := range turns {
		if t.Role == types.RoleAssistant {
			asked++
		}
	}
	if asked > len(questions)-1 {
		asked = len(questions) - 1
	}
	return questions[asked]
}

// buildMemory returns the last turns inside the memory window with the
// candidate role remapped for the generator.
func buildMemory(turns []db.Turn) []llm.Message {
	start := 0
	if len(turns) > memoryWindow {
		start = len(turns) - memoryWindow
	}
	memory := make([]llm.Message, 0, len(turns)-start)
	for _, t := range turns[start:] {
		role := t.Role
		if role == types.RoleCandidate {
			role = llm.RoleUser
		}
		memory = append(memory, llm.Message{Role: role, Content: t.Content})
	}
	return memory
}

// lastCandidateUtterance returns the most recent candidate turn, falling
// back to the question hint when the candidate has not spoken yet.
func lastCandidateUtterance(turns []db.Turn, fallback string) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == types.RoleCandidate {
			return turns[i].Content
		}
	}
	return fallback
}

func joinSnippets(snippets []string) string {
	if len(snippets) == 0 {
		return "(none)"
	}
	return "- " + strings.Join(snippets, "\n- ")
}
