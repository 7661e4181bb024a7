// Package signals extracts structured vocabulary and capability signals from
// free-text job descriptions and resumes. All functions are pure: they take
// text and return derived records with no I/O and no failure mode.
package signals

import (
	"regexp"
	"strings"
)

// Signal summarizes the vocabulary hits and capability flags found in a text
// blob. Empty text yields an all-empty Signal.
type Signal struct {
	Stacks   []string `json:"stacks"`   // node, typescript, go, java, ...
	DevOps   []string `json:"devops"`   // kubernetes, docker, terraform, ...
	Data     []string `json:"data"`     // postgres, redis, kafka, ...
	Cloud    []string `json:"cloud"`    // aws, gcp, azure
	Patterns []string `json:"patterns"` // microservices, event-driven, cqrs, ...

	Leadership bool `json:"leadership"`
	Security   bool `json:"security"`
	Scaling    bool `json:"scaling"`
}

// Seniority is the detected experience level of a role or candidate.
type Seniority string

// Seniority levels, from most junior to most senior.
const (
	SeniorityJunior       Seniority = "junior"
	SeniorityMid          Seniority = "mid"
	SenioritySenior       Seniority = "senior"
	SeniorityStaffOrAbove Seniority = "staff_or_above"
)

// Category vocabularies. Matching is whole-word and case-insensitive; hits
// are recorded once in their canonical form (see normalizeToken).
var (
	stackVocab = []string{
		"node", "node.js", "typescript", "ts", "javascript",
		"go", "golang", "java", "python", "rust", "c#", ".net",
	}
	devopsVocab = []string{
		"kubernetes", "k8s", "docker", "terraform", "helm",
		"github actions", "gitlab ci", "jenkins", "argo", "flux",
		"prometheus", "grafana", "elk", "opentelemetry", "otel", "datadog",
	}
	dataVocab = []string{
		"postgres", "postgresql", "mysql", "mariadb", "mongodb",
		"redis", "kafka", "rabbitmq", "sqs", "pub/sub",
		"bigquery", "elasticsearch",
	}
	cloudVocab   = []string{"aws", "gcp", "azure"}
	patternVocab = []string{
		"microservices", "event-driven", "cqrs", "saga", "outbox",
		"ddd", "rest", "grpc", "graphql",
	}
	domainVocab = []string{
		"fintech", "payments", "ecommerce", "adtech", "healthcare",
		"edtech", "logistics", "gaming", "social", "saas", "marketplace",
	}
)

var (
	leadershipRe = regexp.MustCompile(`\b(lead|mentor(?:ed|ing)?|coach(?:ed|ing)?|own(?:ed|ership)|guided|managed|tech(?:nical)?\s*lead)\b`)
	securityRe   = regexp.MustCompile(`\b(security|owasp|secrets|sbom|sast|dast|iam|kms|vault)\b`)
	scalingRe    = regexp.MustCompile(`\b(hpa|autoscal(?:e|ed|ing|er)?|replicas?|throughput|rps|qps|p95|p99|latency|scale|scaling|load|peak traffic)\b`)

	staffRe  = regexp.MustCompile(`\b(principal|staff|architect)\b`)
	seniorRe = regexp.MustCompile(`\bsenior\b`)
	midRe    = regexp.MustCompile(`\b(mid|intermediate)\b`)
)

// wordRes caches one whole-word regexp per vocabulary entry.
var wordRes = map[string]*regexp.Regexp{}

func init() {
	for _, vocab := range [][]string{stackVocab, devopsVocab, dataVocab, cloudVocab, patternVocab, domainVocab} {
		for _, v := range vocab {
			wordRes[v] = regexp.MustCompile(`\b` + regexp.QuoteMeta(v) + `\b`)
		}
	}
}

// Extract scans text for vocabulary hits per category and capability flags.
func Extract(text string) Signal {
	t := " " + strings.ToLower(text) + " "

	return Signal{
		Stacks:     hits(t, stackVocab),
		DevOps:     hits(t, devopsVocab),
		Data:       hits(t, dataVocab),
		Cloud:      hits(t, cloudVocab),
		Patterns:   hits(t, patternVocab),
		Leadership: leadershipRe.MatchString(t),
		Security:   securityRe.MatchString(t),
		Scaling:    scalingRe.MatchString(t),
	}
}

// Terms returns the union of all matched category terms in first-seen order
// (stacks, then devops, data, cloud, patterns). Used for gap analysis.
func (s Signal) Terms() []string {
	out := make([]string, 0, len(s.Stacks)+len(s.DevOps)+len(s.Data)+len(s.Cloud)+len(s.Patterns))
	seen := make(map[string]bool)
	for _, group := range [][]string{s.Stacks, s.DevOps, s.Data, s.Cloud, s.Patterns} {
		for _, term := range group {
			if !seen[term] {
				seen[term] = true
				out = append(out, term)
			}
		}
	}
	return out
}

// DetectSeniority determines the seniority level from title and body text.
// Levels are tested in priority order; junior is the default.
func DetectSeniority(text string) Seniority {
	t := strings.ToLower(text)
	switch {
	case staffRe.MatchString(t):
		return SeniorityStaffOrAbove
	case seniorRe.MatchString(t):
		return SenioritySenior
	case midRe.MatchString(t):
		return SeniorityMid
	default:
		return SeniorityJunior
	}
}

// PickDomains returns up to three industry hints found in the text, in
// vocabulary-list order.
func PickDomains(text string) []string {
	t := strings.ToLower(text)
	out := make([]string, 0, 3)
	for _, d := range domainVocab {
		if wordRes[d].MatchString(t) {
			out = append(out, d)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}

// hits tests each vocabulary entry against the lowercased text and records
// the canonical form of each hit once, in vocabulary order.
func hits(t string, vocab []string) []string {
	out := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, v := range vocab {
		if wordRes[v].MatchString(t) {
			canonical := normalizeToken(v)
			if !seen[canonical] {
				seen[canonical] = true
				out = append(out, canonical)
			}
		}
	}
	return out
}

// normalizeToken collapses vocabulary aliases to one canonical form.
func normalizeToken(v string) string {
	switch v {
	case "node.js":
		return "node"
	case "ts":
		return "typescript"
	case "k8s":
		return "kubernetes"
	case "postgresql":
		return "postgres"
	}
	return strings.ToLower(v)
}
