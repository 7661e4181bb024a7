package plan

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/screening-agent/internal/signals"
)

// Plan limits. Baseline questions always come first; tailored questions are
// capped before refinement, the merged result after.
const (
	maxPlanQuestions     = 12
	maxTailoredQuestions = 7
	maxGapProbes         = 3
	maxStackDeepDives    = 2
	summaryLimit         = 900
)

// baselineQuestions is the fixed opener set every session must cover, in
// this exact order.
var baselineQuestions = []string{
	"Baseline: salary expectation?",
	"Baseline: notice period?",
	"Baseline: reason for leaving?",
	"Baseline: motivation for this role?",
	"Baseline: career expectations?",
}

// stackPriority orders deep-dive candidates; stacks not listed keep their
// relative order after the listed ones.
var stackPriority = []string{"node", "typescript", "go", "java", "python", "rust"}

// cicdTools and dataSystems gate the CI/CD and data-bottleneck questions.
var (
	cicdTools   = []string{"terraform", "helm", "github actions", "argo", "jenkins", "gitlab ci"}
	dataSystems = []string{"postgres", "mysql", "redis", "kafka", "rabbitmq"}
)

// Builder generates screening plans. A nil refiner disables the optional
// model refinement step, making Generate fully deterministic.
type Builder struct {
	refiner Refiner
}

// NewBuilder creates a plan builder. Pass nil to disable refinement.
func NewBuilder(refiner Refiner) *Builder {
	return &Builder{refiner: refiner}
}

// Generate produces an ordered list of at most twelve question strings: the
// five baseline questions first, then tailored questions synthesized from
// the JD-CV analysis, optionally merged with refined questions from the
// model. Refinement failures fall back silently to the deterministic list;
// the external step never blocks or fails the plan.
func (b *Builder) Generate(ctx context.Context, title, jobText, resumeText string) []string {
	analysis := Analyze(title, jobText, resumeText)
	tailored := tailoredQuestions(analysis)

	if b.refiner != nil {
		refined, outcome := b.refiner.Refine(ctx, RefineInput{
			Title:         title,
			JDSummary:     summarize(jobText, summaryLimit),
			ResumeSummary: summarize(resumeText, summaryLimit),
			Seeds:         tailored,
		})
		if outcome == RefineOK {
			merged := append(append(append([]string{}, baselineQuestions...), refined...), tailored...)
			return truncate(dedupe(merged), maxPlanQuestions)
		}
	}

	return truncate(dedupe(append(append([]string{}, baselineQuestions...), tailored...)), maxPlanQuestions)
}

// tailoredQuestions synthesizes follow-up questions from the analysis in a
// fixed priority order, dedupes them case-insensitively, and caps the list
// at seven before any refinement.
func tailoredQuestions(a Analysis) []string {
	qs := make([]string, 0, maxTailoredQuestions)

	// 1) Domain-specific opener
	if len(a.DomainHints) > 0 {
		qs = append(qs, fmt.Sprintf(
			"Domain: Share a project in %s where you impacted reliability or performance: what changed and how did you measure it?",
			a.DomainHints[0]))
	}

	// 2) Deep dives into stacks the JD and the resume share
	for _, s := range truncate(priorityIntersect(a.Job.Stacks, a.Candidate.Stacks), maxStackDeepDives) {
		qs = append(qs, fmt.Sprintf(
			"Backend: Deep dive into your most impactful %s service: architecture, data model, performance profile, and failure modes.", s))
	}

	// 3) DevOps probes
	if contains(a.Job.DevOps, "kubernetes") {
		qs = append(qs, "DevOps: Walk me through your Kubernetes deployment strategy: Helm/Kustomize, rollouts, HPA signals, and rollback story.")
	}
	if intersects(a.Job.DevOps, cicdTools) {
		qs = append(qs, "CI/CD: Describe your pipeline (stages, test gates, canary/blue-green) and a time it prevented a bad deploy.")
	}

	// 4) Data layer
	if intersects(a.Job.Data, dataSystems) {
		qs = append(qs, "Data: What were your top 2 database/caching bottlenecks and exactly how you fixed them (indices, query plans, cache policy)?")
	}

	// 5) Scaling and reliability
	if a.Job.Scaling || contains(a.Job.Patterns, "microservices") {
		qs = append(qs, "Scaling: Tell me about an incident at peak traffic: what failed, what you changed, and the new p95/p99 and saturation metrics.")
	}

	// 6) Leadership expectations by seniority
	if a.Job.Leadership || a.Seniority != signals.SeniorityJunior {
		qs = append(qs, "Leadership: Example of mentoring or tech-leading: goal, conflicts handled, and how you measured team improvement.")
	}

	// 7) Security
	if a.Job.Security {
		qs = append(qs, "Security: How do you manage secrets, SBOM, and dependency risk in your pipelines? Give one concrete example.")
	}

	// 8) Gap probes for JD items missing from the resume
	for _, g := range truncate(a.Gaps, maxGapProbes) {
		qs = append(qs, fmt.Sprintf(
			"Gap probe: The JD emphasizes %s. Can you share any relevant experience or how you'd approach it here?", g))
	}

	// 9) Calibration closer, always last
	qs = append(qs, "Calibration: For your last major win: team size, your scope, exact metrics (before/after), and the rollback plan.")

	return truncate(dedupe(qs), maxTailoredQuestions)
}

// priorityIntersect returns the stacks present in both lists, ordered by
// stackPriority; stacks off the priority list keep their relative order
// after the prioritized ones.
func priorityIntersect(jobStacks, candidateStacks []string) []string {
	candidateSet := make(map[string]bool, len(candidateStacks))
	for _, s := range candidateStacks {
		candidateSet[s] = true
	}

	both := make([]string, 0, len(jobStacks))
	for _, s := range jobStacks {
		if candidateSet[s] {
			both = append(both, s)
		}
	}

	rank := func(s string) int {
		for i, p := range stackPriority {
			if p == s {
				return i
			}
		}
		return len(stackPriority)
	}
	sort.SliceStable(both, func(i, j int) bool {
		return rank(both[i]) < rank(both[j])
	})
	return both
}

// dedupe removes case-insensitive duplicates, keeping first occurrences.
func dedupe(questions []string) []string {
	seen := make(map[string]bool, len(questions))
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		key := strings.ToLower(q)
		if !seen[key] {
			seen[key] = true
			out = append(out, q)
		}
	}
	return out
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(list, vocab []string) bool {
	for _, v := range vocab {
		if contains(list, v) {
			return true
		}
	}
	return false
}

// summarize collapses whitespace and truncates text for prompt inclusion.
func summarize(s string, max int) string {
	t := strings.Join(strings.Fields(s), " ")
	if len(t) > max {
		return t[:max] + "..."
	}
	return t
}
