package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/screening-agent/internal/signals"
)

func TestAnalyze_GapsExcludeSharedTerms(t *testing.T) {
	jd := "We need Kubernetes, CI/CD with GitHub Actions, Postgres and mentoring. Target p95 latency under 200ms."
	cv := "Tuned Postgres query plans and mentored two juniors."

	a := Analyze("Senior Backend Engineer", jd, cv)

	assert.Contains(t, a.Gaps, "kubernetes")
	assert.NotContains(t, a.Gaps, "postgres")
}

func TestAnalyze_GapsCapped(t *testing.T) {
	jd := "node typescript go java python kubernetes docker terraform postgres redis kafka aws gcp"

	a := Analyze("Backend Engineer", jd, "")

	assert.Len(t, a.Gaps, maxGaps)
}

func TestAnalyze_GapsFollowJobSignalOrder(t *testing.T) {
	jd := "Kafka pipelines deployed on Kubernetes backed by Postgres."

	a := Analyze("Engineer", jd, "")

	// Terms run stacks, devops, data, cloud, patterns; devops before data.
	assert.Equal(t, []string{"kubernetes", "postgres", "kafka"}, a.Gaps)
}

func TestAnalyze_SeniorityFromTitleAndJD(t *testing.T) {
	a := Analyze("Staff Engineer", "backend role", "")
	assert.Equal(t, signals.SeniorityStaffOrAbove, a.Seniority)

	a = Analyze("Engineer", "senior backend role", "")
	assert.Equal(t, signals.SenioritySenior, a.Seniority)

	a = Analyze("Engineer", "backend role", "")
	assert.Equal(t, signals.SeniorityJunior, a.Seniority)
}

func TestAnalyze_DomainHints(t *testing.T) {
	a := Analyze("Backend Engineer", "payments platform for a fintech startup", "")
	assert.Contains(t, a.DomainHints, "fintech")
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	a := Analyze("", "", "")

	assert.Empty(t, a.Gaps)
	assert.Empty(t, a.DomainHints)
	assert.Equal(t, signals.SeniorityJunior, a.Seniority)
}
