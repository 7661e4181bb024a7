package plan

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJD = `
Role: Senior Backend Engineer (with DevOps expertise)
Responsibilities:
- Architect and implement backend services in Node.js/TypeScript and Go.
- CI/CD, Docker, Kubernetes; design scalable data models (PostgreSQL, Redis).
- Monitoring (Prometheus, Grafana, ELK). Cloud (AWS/GCP). Terraform/Helm.
Qualifications:
- 5+ years backend, distributed systems, scalable architectures.
- DevOps background: CI/CD, K8s, IaC. Mentoring experience.
Nice to have: Event-driven (Kafka/RabbitMQ), security best practices.
`

const testCV = `
Name: Sarah Ahmed
Summary: Backend engineer with 6 years in distributed, high-performance systems. Node.js/TS, cloud-native, CI/CD, scaling.
FinTechX (2021-present): Scaled payment APIs to 20k+/min; K8s (GCP); GitHub Actions + Helm; led 3 engineers; Redis cache cut p95 from 800ms->200ms.
ShopEase (2018-2021): Node/Express; Postgres optimizations + read replicas; Terraform; Prometheus/Grafana lowered MTTR 40%.
Skills: Node.js, TS, Go (beginner), PostgreSQL, Redis, Kubernetes, Docker, Terraform, Helm, Prometheus, Grafana, ELK.
`

func TestGenerate_Deterministic(t *testing.T) {
	b := NewBuilder(nil)
	ctx := context.Background()

	first := b.Generate(ctx, "Senior Backend Engineer", testJD, testCV)
	second := b.Generate(ctx, "Senior Backend Engineer", testJD, testCV)

	assert.Equal(t, first, second)
}

func TestGenerate_BaselineFirstInOrder(t *testing.T) {
	b := NewBuilder(nil)
	questions := b.Generate(context.Background(), "Senior Backend Engineer", testJD, testCV)

	require.GreaterOrEqual(t, len(questions), 5)
	assert.Equal(t, baselineQuestions, questions[:5])
}

func TestGenerate_CapAndNoDuplicates(t *testing.T) {
	b := NewBuilder(nil)
	questions := b.Generate(context.Background(), "Senior Backend Engineer", testJD, testCV)

	assert.LessOrEqual(t, len(questions), maxPlanQuestions)

	seen := make(map[string]bool)
	for _, q := range questions {
		key := strings.ToLower(q)
		assert.False(t, seen[key], "duplicate question: %s", q)
		seen[key] = true
	}
}

func TestGenerate_TailoredCoverage(t *testing.T) {
	// JD mentions Kubernetes, CI/CD tooling, Postgres, mentoring, p95
	// latency; resume covers Postgres and mentoring, so gaps exist too.
	b := NewBuilder(nil)
	questions := b.Generate(context.Background(), "Senior Backend Engineer", testJD, testCV)
	joined := strings.Join(questions, "\n")

	assert.Contains(t, joined, "Kubernetes deployment strategy")
	assert.Contains(t, joined, "CI/CD: Describe your pipeline")
	assert.Contains(t, joined, "database/caching bottlenecks")
	assert.Contains(t, joined, "Leadership: Example of mentoring")
}

func TestGenerate_EmptyInputsStillYieldBaseline(t *testing.T) {
	b := NewBuilder(nil)
	questions := b.Generate(context.Background(), "", "", "")

	// Baseline plus the always-appended calibration closer; the leadership
	// question is absent because an empty JD reads as junior.
	require.GreaterOrEqual(t, len(questions), 6)
	assert.Equal(t, baselineQuestions, questions[:5])
	assert.Contains(t, questions[len(questions)-1], "Calibration:")
}

func TestTailoredQuestions_CalibrationAlwaysLast(t *testing.T) {
	a := Analyze("Senior Backend Engineer", testJD, testCV)
	qs := tailoredQuestions(a)

	require.NotEmpty(t, qs)
	assert.LessOrEqual(t, len(qs), maxTailoredQuestions)
}

func TestPriorityIntersect(t *testing.T) {
	// JD order is rust, go, node; priority order puts node first, then go,
	// then rust.
	got := priorityIntersect(
		[]string{"rust", "go", "node", "java"},
		[]string{"node", "rust", "go"},
	)
	assert.Equal(t, []string{"node", "go", "rust"}, got)
}

func TestPriorityIntersect_UnlistedKeepRelativeOrder(t *testing.T) {
	got := priorityIntersect(
		[]string{"c#", "golang", "node"},
		[]string{"node", "c#", "golang"},
	)
	// node is prioritized; c# and golang are off-list and keep JD order.
	assert.Equal(t, []string{"node", "c#", "golang"}, got)
}

type stubRefiner struct {
	questions []string
	outcome   RefineOutcome
	calls     int
}

func (s *stubRefiner) Refine(_ context.Context, _ RefineInput) ([]string, RefineOutcome) {
	s.calls++
	return s.questions, s.outcome
}

func TestGenerate_RefinedMergedAfterBaseline(t *testing.T) {
	refiner := &stubRefiner{
		questions: []string{"Refined: how do you size a Postgres connection pool?"},
		outcome:   RefineOK,
	}
	b := NewBuilder(refiner)

	questions := b.Generate(context.Background(), "Senior Backend Engineer", testJD, testCV)

	require.Equal(t, 1, refiner.calls)
	assert.Equal(t, baselineQuestions, questions[:5])
	assert.Equal(t, refiner.questions[0], questions[5])
	assert.LessOrEqual(t, len(questions), maxPlanQuestions)
}

func TestGenerate_RefinerFailureFallsBackSilently(t *testing.T) {
	deterministic := NewBuilder(nil).Generate(context.Background(), "Senior Backend Engineer", testJD, testCV)

	for _, outcome := range []RefineOutcome{RefineUnavailable, RefineMalformed} {
		b := NewBuilder(&stubRefiner{outcome: outcome})
		got := b.Generate(context.Background(), "Senior Backend Engineer", testJD, testCV)
		assert.Equal(t, deterministic, got, "outcome %s", outcome)
	}
}

func TestParseRefineResponse(t *testing.T) {
	qs, ok := parseRefineResponse(`{"questions": ["a", "b"]}`)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, qs)

	_, ok = parseRefineResponse(`{"questions": "not an array"}`)
	assert.False(t, ok)

	_, ok = parseRefineResponse(`{"items": []}`)
	assert.False(t, ok)

	_, ok = parseRefineResponse(`not json at all`)
	assert.False(t, ok)
}
