package explain

import "github.com/abhisek/valenz/internal/llm"

// ExplanationSchema is the structured output requested from the LLM.
var ExplanationSchema = &llm.Schema{
	Name:        "valence-explanation",
	Description: "Why a chemical element has its common valences, with a memory aid",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "2-4 sentences on why the element shows these valences, based on its electron configuration",
			},
			"mnemonic": map[string]any{
				"type":        "string",
				"description": "One short memory aid for the valences",
			},
		},
		"required":             []any{"explanation", "mnemonic"},
		"additionalProperties": false,
	},
}
