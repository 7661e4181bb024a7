package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/screening-agent/internal/types"
)

// Baseline field defaults used when the transcript never states a value.
const (
	defaultSalary       = "Not stated"
	defaultNotice       = "2 weeks"
	defaultReason       = "Career growth"
	defaultMotivation   = "Impact + scale"
	defaultExpectations = "Senior IC with leadership scope"
)

// RiskFlagAIAssisted is appended to riskFlags whenever AI assistance is
// suspected, on both the heuristic and the model paths.
const RiskFlagAIAssisted = "Possible AI-assisted responses"

// jargonThreshold is the buzzword-stuffing cutoff: more hits than this flips
// the suspicion flag.
const jargonThreshold = 18

// Baseline capture patterns. First match wins; the captured value is the
// rest of the line.
var (
	salaryRe       = regexp.MustCompile(`(?i)salary[^:\n]*:\s*([^\n]+)`)
	noticeRe       = regexp.MustCompile(`(?i)notice[^:\n]*:\s*([^\n]+)`)
	reasonRe       = regexp.MustCompile(`(?i)reason[^:\n]*:\s*([^\n]+)`)
	motivationRe   = regexp.MustCompile(`(?i)motivation[^:\n]*:\s*([^\n]+)`)
	expectationsRe = regexp.MustCompile(`(?i)expectations?[^:\n]*:\s*([^\n]+)`)
)

// Whole words only; substrings inside ordinary prose must not count.
var jargonRe = regexp.MustCompile(`(?i)\b(p95|p99|kubernetes|helm|terraform)\b`)

// disclosurePhrases are literal giveaways that the answer text came from a
// model rather than the candidate.
var disclosurePhrases = []string{
	"as an ai",
	"as a language model",
	"language model",
	"i cannot assist",
	"i'm just an ai",
	"chatgpt",
}

// HeuristicExtract is the local, non-blocking extraction path: regex capture
// of baseline lines with fixed defaults, canned SPARC evidence, and the
// suspicion heuristic. It never fails.
func HeuristicExtract(transcript string) types.Extraction {
	suspicion := detectAIAssistance(transcript)

	ext := types.Extraction{
		SalaryExpectation:  captureLine(salaryRe, transcript, defaultSalary),
		NoticePeriod:       captureLine(noticeRe, transcript, defaultNotice),
		ReasonForLeaving:   captureLine(reasonRe, transcript, defaultReason),
		Motivation:         captureLine(motivationRe, transcript, defaultMotivation),
		CareerExpectations: captureLine(expectationsRe, transcript, defaultExpectations),
		Sparc:              cannedSparcItems(),
		RiskFlags:          []string{},
		AIAssistance:       suspicion,
	}
	ext.RiskFlags = EnforceSuspicionFlag(ext.RiskFlags, suspicion)
	return ext
}

// cannedSparcItems keeps the scoring pipeline non-blocking when no model
// extraction ran. Emitted only on the heuristic path.
func cannedSparcItems() []types.SparcItem {
	return []types.SparcItem{
		{
			AnchorSnippet: "Scaled APIs to peak traffic",
			Situation:     "High-traffic payments API approaching capacity",
			Problem:       "p95 latency degraded under peak load",
			Action:        "Introduced Redis caching and tuned Postgres queries",
			Result:        "p95 dropped from 800ms to 200ms",
			Calibration:   "Verified with load tests before rollout",
			Score:         0.75,
			Tags:          []string{"backend", "scaling"},
		},
		{
			AnchorSnippet: "Mentored junior engineers",
			Situation:     "Team grew with two junior hires",
			Problem:       "Inconsistent code quality and slow reviews",
			Action:        "Ran pairing sessions and introduced review guidelines",
			Result:        "Review turnaround halved within a quarter",
			Calibration:   "Tracked review metrics over three months",
			Score:         0.7,
			Tags:          []string{"leadership"},
		},
	}
}

// detectAIAssistance applies the fixed suspicion heuristic: disclosure
// phrases, the stock "In conclusion," transition, or buzzword stuffing above
// the jargon threshold. Confidence is fixed at 0.7 when suspected, 0.2
// otherwise.
func detectAIAssistance(transcript string) types.AIAssistance {
	lowered := strings.ToLower(transcript)

	var signals []string
	for _, phrase := range disclosurePhrases {
		if strings.Contains(lowered, phrase) {
			signals = append(signals, "AI disclosure phrase: "+phrase)
			break
		}
	}
	if strings.Contains(transcript, "In conclusion,") {
		signals = append(signals, "Stock transition phrasing")
	}
	if hits := len(jargonRe.FindAllString(transcript, -1)); hits > jargonThreshold {
		signals = append(signals, "Buzzword stuffing")
	}

	if len(signals) > 0 {
		return types.AIAssistance{Suspected: true, Confidence: 0.7, Signals: signals}
	}
	return types.AIAssistance{Suspected: false, Confidence: 0.2, Signals: []string{}}
}

// EnforceSuspicionFlag ensures the AI-assisted risk flag is present exactly
// once when suspicion is raised.
func EnforceSuspicionFlag(flags []string, ai types.AIAssistance) []string {
	if !ai.Suspected {
		return flags
	}
	for _, f := range flags {
		if f == RiskFlagAIAssisted {
			return flags
		}
	}
	return append(flags, RiskFlagAIAssisted)
}

func captureLine(re *regexp.Regexp, transcript, fallback string) string {
	if m := re.FindStringSubmatch(transcript); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fallback
}
