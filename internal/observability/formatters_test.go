package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/screening-agent/internal/plan"
	"github.com/jonathan/screening-agent/internal/types"
)

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPlan([]string{"Baseline: salary expectation?", "Baseline: notice period?"})

	out := buf.String()
	assert.Contains(t, out, "SCREENING PLAN")
	assert.Contains(t, out, "1. Baseline: salary expectation?")
	assert.Contains(t, out, "2. Baseline: notice period?")
}

func TestPrintPlan_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintPlan(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	a := plan.Analyze("Senior Backend Engineer",
		"Kubernetes and Postgres with mentoring", "Postgres tuning")
	p.PrintAnalysis(&a)

	out := buf.String()
	assert.Contains(t, out, "JD-CV ANALYSIS")
	assert.Contains(t, out, "senior")
	assert.Contains(t, out, "kubernetes")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ext := &types.Extraction{
		SalaryExpectation: "70k",
		NoticePeriod:      "2 weeks",
		Sparc:             []types.SparcItem{{AnchorSnippet: "cut p95", Score: 0.8}},
		RiskFlags:         []string{"Possible AI-assisted responses"},
		AIAssistance:      types.AIAssistance{Suspected: true, Confidence: 0.7},
	}
	p.PrintReport(ext, 72, "hold")

	out := buf.String()
	assert.Contains(t, out, "SCREENING REPORT")
	assert.Contains(t, out, "Fit score: 72  (hold)")
	assert.Contains(t, out, "cut p95")
	assert.Contains(t, out, "AI assistance suspected")
}
