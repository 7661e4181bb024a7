// Package types provides type definitions for structured data shared across
// the screening engine: SPARC evidence items, transcript extractions, and
// the AI-assistance judgment.
package types

// SparcItem is one piece of behavioral evidence extracted from a screening
// transcript: Situation, Problem, Action, Result, Calibration, plus a raw
// score and optional thematic tags. Items are created once at session end
// and are immutable afterwards.
type SparcItem struct {
	AnchorSnippet string   `json:"anchorSnippet"`
	Situation     string   `json:"situation"`
	Problem       string   `json:"problem"`
	Action        string   `json:"action"`
	Result        string   `json:"result"`
	Calibration   string   `json:"calibration"`
	Score         float64  `json:"score"`
	Tags          []string `json:"tags,omitempty"`
}

// AIAssistance is the heuristic judgment of whether the candidate's answers
// were template-generated rather than original.
type AIAssistance struct {
	Suspected  bool     `json:"suspected"`
	Confidence float64  `json:"confidence"`
	Signals    []string `json:"signals"`
}

// Extraction is the structured result of transcript signal extraction:
// baseline answers, SPARC evidence, risk flags, and the AI-assistance
// judgment.
type Extraction struct {
	SalaryExpectation  string       `json:"salaryExpectation"`
	NoticePeriod       string       `json:"noticePeriod"`
	ReasonForLeaving   string       `json:"reasonForLeaving"`
	Motivation         string       `json:"motivation"`
	CareerExpectations string       `json:"careerExpectations"`
	Sparc              []SparcItem  `json:"sparc"`
	RiskFlags          []string     `json:"riskFlags"`
	AIAssistance       AIAssistance `json:"ai_assistance"`
}

// Turn roles. Turns are append-only; creation order is the only sequencing
// guarantee.
const (
	RoleAssistant = "assistant"
	RoleCandidate = "candidate"
	RoleSystem    = "system"
)
