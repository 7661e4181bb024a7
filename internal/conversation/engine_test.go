package conversation

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/screening-agent/internal/db"
	"github.com/jonathan/screening-agent/internal/llm"
	"github.com/jonathan/screening-agent/internal/plan"
	"github.com/jonathan/screening-agent/internal/rag"
	"github.com/jonathan/screening-agent/internal/types"
)

type fakeStore struct {
	screening *db.Screening
	job       *db.Job
	candidate *db.Candidate
	turns     []db.Turn
	appended  []db.Turn
}

func (f *fakeStore) GetScreening(_ context.Context, id uuid.UUID) (*db.Screening, error) {
	if f.screening == nil || f.screening.ID != id {
		return nil, nil
	}
	return f.screening, nil
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	if f.job == nil || f.job.ID != id {
		return nil, nil
	}
	return f.job, nil
}

func (f *fakeStore) GetCandidate(_ context.Context, id uuid.UUID) (*db.Candidate, error) {
	if f.candidate == nil || f.candidate.ID != id {
		return nil, nil
	}
	return f.candidate, nil
}

func (f *fakeStore) AppendTurn(_ context.Context, screeningID uuid.UUID, role, content string) (uuid.UUID, error) {
	turn := db.Turn{ID: uuid.New(), ScreeningID: screeningID, Role: role, Content: content, CreatedAt: time.Now()}
	f.appended = append(f.appended, turn)
	f.turns = append(f.turns, turn)
	return turn.ID, nil
}

func (f *fakeStore) ListTurns(_ context.Context, _ uuid.UUID, ascending bool) ([]db.Turn, error) {
	if ascending {
		return f.turns, nil
	}
	out := make([]db.Turn, len(f.turns))
	for i, t := range f.turns {
		out[len(f.turns)-1-i] = t
	}
	return out, nil
}

type fakeRetriever struct {
	queries []string
	ctx     rag.Context
}

func (f *fakeRetriever) Retrieve(_ context.Context, query string) (rag.Context, error) {
	f.queries = append(f.queries, query)
	return f.ctx, nil
}

type fakeStream struct {
	tokens []string
	err    error
	i      int
	closed bool
}

func (f *fakeStream) Next() (string, error) {
	if f.i < len(f.tokens) {
		tok := f.tokens[f.i]
		f.i++
		return tok, nil
	}
	if f.err != nil {
		return "", f.err
	}
	return "", io.EOF
}

func (f *fakeStream) Close() { f.closed = true }

type fakeChatClient struct {
	lastReq llm.ChatRequest
	stream  *fakeStream
}

func (f *fakeChatClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", llm.ErrUnavailable
}

func (f *fakeChatClient) StreamChat(_ context.Context, req llm.ChatRequest) (llm.Stream, error) {
	f.lastReq = req
	return f.stream, nil
}

func (f *fakeChatClient) Available() bool { return true }
func (f *fakeChatClient) Close() error    { return nil }

func newFixture(stream *fakeStream) (*Engine, *fakeStore, *fakeRetriever, *fakeChatClient, uuid.UUID) {
	jobID, candID, screeningID := uuid.New(), uuid.New(), uuid.New()
	store := &fakeStore{
		screening: &db.Screening{ID: screeningID, JobID: jobID, CandidateID: candID, Status: db.ScreeningActive},
		job: &db.Job{ID: jobID, Title: "Senior Backend Engineer",
			JDText: "Kubernetes, CI/CD with Helm, Postgres, mentoring, p95 latency targets."},
		candidate: &db.Candidate{ID: candID, Name: "Sarah Ahmed",
			CVText: "Node.js services, Postgres tuning, mentored juniors."},
	}
	retriever := &fakeRetriever{ctx: rag.Context{JD: []string{"jd snippet"}, CV: []string{"cv snippet"}}}
	client := &fakeChatClient{stream: stream}
	engine := NewEngine(store, store, retriever, client, plan.NewBuilder(nil))
	return engine, store, retriever, client, screeningID
}

func TestBegin_UnknownScreening(t *testing.T) {
	engine, _, _, _, _ := newFixture(&fakeStream{})

	_, err := engine.Begin(context.Background(), uuid.New())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "screening", nf.Kind)
}

func TestBegin_FirstTurnUsesFirstPlannedQuestion(t *testing.T) {
	engine, _, retriever, client, id := newFixture(&fakeStream{tokens: []string{"Hi"}})

	_, err := engine.Begin(context.Background(), id)
	require.NoError(t, err)

	assert.Contains(t, client.lastReq.Prompt, "Baseline: salary expectation?")
	// No candidate turn yet, so the retrieval query is the question hint.
	require.Len(t, retriever.queries, 1)
	assert.Contains(t, retriever.queries[0], "salary expectation")
}

func TestBegin_PlanExhaustionRepeatsFinalQuestion(t *testing.T) {
	engine, store, _, client, id := newFixture(&fakeStream{tokens: []string{"Hi"}})
	for i := 0; i < 30; i++ {
		store.turns = append(store.turns, db.Turn{Role: types.RoleAssistant, Content: "q"})
	}

	_, err := engine.Begin(context.Background(), id)
	require.NoError(t, err)

	assert.Contains(t, client.lastReq.Prompt, "Calibration:")
}

func TestBegin_MemoryWindowAndRoleRemap(t *testing.T) {
	engine, store, _, client, id := newFixture(&fakeStream{tokens: []string{"Hi"}})
	for i := 0; i < 6; i++ {
		store.turns = append(store.turns,
			db.Turn{Role: types.RoleAssistant, Content: "question"},
			db.Turn{Role: types.RoleCandidate, Content: "answer"},
		)
	}

	_, err := engine.Begin(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, client.lastReq.History, memoryWindow)
	for _, m := range client.lastReq.History {
		assert.NotEqual(t, types.RoleCandidate, m.Role)
	}
	assert.Equal(t, llm.RoleUser, client.lastReq.History[len(client.lastReq.History)-1].Role)
}

func TestBegin_RagQueryPrefersLastCandidateTurn(t *testing.T) {
	engine, store, retriever, _, id := newFixture(&fakeStream{tokens: []string{"Hi"}})
	store.turns = []db.Turn{
		{Role: types.RoleAssistant, Content: "Baseline: salary expectation?"},
		{Role: types.RoleCandidate, Content: "I scaled Redis caches at peak traffic"},
	}

	_, err := engine.Begin(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, retriever.queries, 1)
	assert.Equal(t, "I scaled Redis caches at peak traffic", retriever.queries[0])
}

func TestBegin_SystemPromptEmbedsContext(t *testing.T) {
	engine, _, _, client, id := newFixture(&fakeStream{tokens: []string{"Hi"}})

	_, err := engine.Begin(context.Background(), id)
	require.NoError(t, err)

	assert.Contains(t, client.lastReq.System, "jd snippet")
	assert.Contains(t, client.lastReq.System, "cv snippet")
	assert.Contains(t, client.lastReq.System, "Senior Backend Engineer")
}

func TestTurnStream_CommitAfterCleanEOF(t *testing.T) {
	engine, store, _, _, id := newFixture(&fakeStream{tokens: []string{"What is", " your", " notice period? "}})

	stream, err := engine.Begin(context.Background(), id)
	require.NoError(t, err)

	var got string
	for {
		tok, err := stream.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got += tok
	}
	require.NoError(t, stream.Commit(context.Background()))

	require.Len(t, store.appended, 1)
	assert.Equal(t, types.RoleAssistant, store.appended[0].Role)
	assert.Equal(t, "What is your notice period?", store.appended[0].Content)
	assert.Equal(t, "What is your notice period? ", got)
}

func TestTurnStream_CommitBeforeEOFPersistsNothing(t *testing.T) {
	engine, store, _, _, id := newFixture(&fakeStream{tokens: []string{"partial", " reply"}})

	stream, err := engine.Begin(context.Background(), id)
	require.NoError(t, err)

	_, err = stream.Next()
	require.NoError(t, err)

	assert.ErrorIs(t, stream.Commit(context.Background()), ErrStreamIncomplete)
	assert.Empty(t, store.appended)
}

func TestTurnStream_MidStreamFailurePersistsNothing(t *testing.T) {
	boom := errors.New("provider reset")
	engine, store, _, _, id := newFixture(&fakeStream{tokens: []string{"some", " tokens"}, err: boom})

	stream, err := engine.Begin(context.Background(), id)
	require.NoError(t, err)

	var streamErr error
	for {
		_, err := stream.Next()
		if err != nil {
			streamErr = err
			break
		}
	}

	assert.ErrorIs(t, streamErr, boom)
	assert.ErrorIs(t, stream.Commit(context.Background()), ErrStreamIncomplete)
	assert.Empty(t, store.appended)
}

func TestPlan_RecomputeIsStable(t *testing.T) {
	engine, _, _, _, id := newFixture(&fakeStream{})

	first, err := engine.Plan(context.Background(), id)
	require.NoError(t, err)
	second, err := engine.Plan(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Baseline: salary expectation?", first[0])
}
