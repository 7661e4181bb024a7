// Package extraction turns a finished screening transcript into structured
// signals: baseline answers, SPARC evidence items, risk flags, and the
// AI-assistance judgment. The model path is best-effort; the heuristic path
// always produces a usable result.
package extraction

import (
	"context"
	"encoding/json"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/screening-agent/internal/llm"
	"github.com/jonathan/screening-agent/internal/prompts"
	"github.com/jonathan/screening-agent/internal/types"
)

// extractTimeout bounds the model extraction call.
const extractTimeout = 30 * time.Second

// Outcome tags how the extraction was produced. Anything other than
// ExtractOK means the heuristic path supplied the result.
type Outcome string

// Extraction outcomes.
const (
	ExtractOK          Outcome = "ok"
	ExtractMalformed   Outcome = "malformed"
	ExtractUnavailable Outcome = "unavailable"
)

// Extractor runs transcript signal extraction with a model-first, heuristic-
// fallback strategy.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an extractor. A nil or unavailable client pins every
// extraction to the heuristic path.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract produces structured signals from the transcript. Model failures
// and malformed responses degrade silently to the heuristic result; the
// returned outcome records which path ran. Extract never returns an error
// because a finished session must always be scorable.
func (e *Extractor) Extract(ctx context.Context, transcript string) (types.Extraction, Outcome) {
	if e.client == nil || !e.client.Available() {
		return HeuristicExtract(transcript), ExtractUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	template := prompts.MustGet("interview.json", "extract-transcript")
	prompt := prompts.Format(template, map[string]string{"Transcript": transcript})

	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return HeuristicExtract(transcript), ExtractUnavailable
	}

	ext, ok := parseExtractionResponse(raw)
	if !ok {
		ext, ok = parseExtractionResponse(llm.RepairJSON(raw))
		if !ok {
			return HeuristicExtract(transcript), ExtractMalformed
		}
	}

	ext.RiskFlags = EnforceSuspicionFlag(ext.RiskFlags, ext.AIAssistance)
	return ext, ExtractOK
}

// parseExtractionResponse validates the raw response against the extraction
// schema and decodes it.
func parseExtractionResponse(raw string) (types.Extraction, bool) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(extractionSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil || !result.Valid() {
		return types.Extraction{}, false
	}

	var ext types.Extraction
	if err := json.Unmarshal([]byte(raw), &ext); err != nil {
		return types.Extraction{}, false
	}
	if ext.RiskFlags == nil {
		ext.RiskFlags = []string{}
	}
	return ext, true
}
