package extraction

// extractionSchema validates the model's extraction response before it is
// decoded. Baseline fields and the sparc array are required; the schema is
// permissive about extra keys so minor prompt drift does not break parsing.
const extractionSchema = `{
	"type": "object",
	"properties": {
		"salaryExpectation": {"type": "string"},
		"noticePeriod": {"type": "string"},
		"reasonForLeaving": {"type": "string"},
		"motivation": {"type": "string"},
		"careerExpectations": {"type": "string"},
		"sparc": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"anchorSnippet": {"type": "string"},
					"situation": {"type": "string"},
					"problem": {"type": "string"},
					"action": {"type": "string"},
					"result": {"type": "string"},
					"calibration": {"type": "string"},
					"score": {"type": "number"},
					"tags": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["anchorSnippet", "action", "result", "score"]
			}
		},
		"riskFlags": {"type": "array", "items": {"type": "string"}},
		"ai_assistance": {
			"type": "object",
			"properties": {
				"suspected": {"type": "boolean"},
				"confidence": {"type": "number"},
				"signals": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["suspected", "confidence"]
		}
	},
	"required": ["salaryExpectation", "noticePeriod", "reasonForLeaving", "motivation", "careerExpectations", "sparc", "ai_assistance"]
}`
