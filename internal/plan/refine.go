package plan

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jonathan/screening-agent/internal/llm"
	"github.com/jonathan/screening-agent/internal/prompts"
	"github.com/xeipuuv/gojsonschema"
)

// refineTimeout bounds the optional refinement call so it can never stall
// plan generation.
const refineTimeout = 15 * time.Second

// RefineOutcome tags the result of a refinement attempt. Anything other
// than RefineOK means the caller must use the deterministic plan.
type RefineOutcome string

// Refinement outcomes.
const (
	RefineOK          RefineOutcome = "ok"
	RefineMalformed   RefineOutcome = "malformed"
	RefineUnavailable RefineOutcome = "unavailable"
)

// RefineInput carries the compact context handed to the refinement model.
type RefineInput struct {
	Title         string
	JDSummary     string
	ResumeSummary string
	Seeds         []string
}

// Refiner improves a seed list of tailored questions. Implementations are
// best-effort: they report an outcome instead of returning an error because
// no refinement failure may propagate to the session.
type Refiner interface {
	Refine(ctx context.Context, in RefineInput) ([]string, RefineOutcome)
}

// refineSchema validates the refinement response shape.
const refineSchema = `{
	"type": "object",
	"properties": {
		"questions": {
			"type": "array",
			"items": {"type": "string"}
		}
	},
	"required": ["questions"]
}`

// LLMRefiner implements Refiner on top of an LLM client.
type LLMRefiner struct {
	client llm.Client
}

// NewLLMRefiner creates a refiner backed by the given client. Returns a nil
// Refiner when the client has no real provider, which disables refinement
// entirely.
func NewLLMRefiner(client llm.Client) Refiner {
	if client == nil || !client.Available() {
		return nil
	}
	return &LLMRefiner{client: client}
}

// Refine asks the model to improve the seed questions. The response must be
// a JSON object with a "questions" string array; a trailing-comma repair is
// attempted once before declaring the response malformed.
func (r *LLMRefiner) Refine(ctx context.Context, in RefineInput) ([]string, RefineOutcome) {
	ctx, cancel := context.WithTimeout(ctx, refineTimeout)
	defer cancel()

	template := prompts.MustGet("interview.json", "refine-questions")
	prompt := prompts.Format(template, map[string]string{
		"Title":         in.Title,
		"JDSummary":     in.JDSummary,
		"ResumeSummary": in.ResumeSummary,
		"Seeds":         "- " + strings.Join(in.Seeds, "\n- "),
	})

	raw, err := r.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, RefineUnavailable
	}

	questions, ok := parseRefineResponse(raw)
	if !ok {
		// One shallow repair pass before giving up
		questions, ok = parseRefineResponse(llm.RepairJSON(raw))
		if !ok {
			return nil, RefineMalformed
		}
	}
	return questions, RefineOK
}

// parseRefineResponse validates and decodes a refinement response.
func parseRefineResponse(raw string) ([]string, bool) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(refineSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil || !result.Valid() {
		return nil, false
	}

	var parsed struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, false
	}
	return parsed.Questions, true
}
