package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_CanonicalForms(t *testing.T) {
	sig := Extract("We use Node.js and TS on K8s with PostgreSQL.")

	assert.Equal(t, []string{"node", "typescript"}, sig.Stacks)
	assert.Equal(t, []string{"kubernetes"}, sig.DevOps)
	assert.Equal(t, []string{"postgres"}, sig.Data)
}

func TestExtract_NoDuplicateCanonicalForms(t *testing.T) {
	// Both the alias and the canonical spelling appear; only one hit recorded.
	sig := Extract("Kubernetes (k8s) and Postgres aka PostgreSQL")

	assert.Equal(t, []string{"kubernetes"}, sig.DevOps)
	assert.Equal(t, []string{"postgres"}, sig.Data)
}

func TestExtract_WholeWordMatching(t *testing.T) {
	// "golang" must not produce a spurious "go" hit via substring matching.
	sig := Extract("golang services")
	assert.NotContains(t, sig.Stacks, "go")
	assert.Contains(t, sig.Stacks, "golang")

	// "rescale" contains "scale" but is not a whole-word hit; the scaling
	// flag still fires on "scaling".
	assert.False(t, Extract("rescale").Scaling)
	assert.True(t, Extract("scaling the platform").Scaling)
}

func TestExtract_Flags(t *testing.T) {
	assert.True(t, Extract("mentored three engineers").Leadership)
	assert.True(t, Extract("secrets rotation with Vault").Security)
	assert.True(t, Extract("p95 under 200ms at peak traffic").Scaling)

	empty := Extract("")
	assert.False(t, empty.Leadership)
	assert.False(t, empty.Security)
	assert.False(t, empty.Scaling)
	assert.Empty(t, empty.Stacks)
}

func TestTerms_FirstSeenOrder(t *testing.T) {
	sig := Signal{
		Stacks: []string{"node", "go"},
		DevOps: []string{"kubernetes"},
		Data:   []string{"postgres"},
		Cloud:  []string{"aws"},
	}
	assert.Equal(t, []string{"node", "go", "kubernetes", "postgres", "aws"}, sig.Terms())
}

func TestDetectSeniority_PriorityOrder(t *testing.T) {
	tests := []struct {
		text string
		want Seniority
	}{
		{"Principal Engineer", SeniorityStaffOrAbove},
		{"Staff Software Engineer", SeniorityStaffOrAbove},
		{"Senior Backend Engineer", SenioritySenior},
		// staff wins over senior when both appear
		{"Senior Staff Engineer", SeniorityStaffOrAbove},
		{"Mid-level developer", SeniorityMid},
		{"Backend Engineer", SeniorityJunior},
		{"", SeniorityJunior},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectSeniority(tt.text), "text: %q", tt.text)
	}
}

func TestPickDomains_CappedAtThree(t *testing.T) {
	domains := PickDomains("fintech payments ecommerce adtech healthcare")
	assert.Equal(t, []string{"fintech", "payments", "ecommerce"}, domains)
}

func TestPickDomains_VocabularyOrder(t *testing.T) {
	// Order follows the vocabulary list, not text order.
	domains := PickDomains("a saas product for payments")
	assert.Equal(t, []string{"payments", "saas"}, domains)
}
