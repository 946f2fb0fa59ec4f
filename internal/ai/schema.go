package ai

import (
	"encoding/json"
	"fmt"
)

// Границы схемы audience_pack. Модель обязана их соблюдать через
// strict json_schema, но ответ всё равно перепроверяется на нашей стороне.
const (
	audienceCount = 5

	minSubtasks = 3
	maxSubtasks = 6

	minRecos = 4
	maxRecos = 8
)

// audiencePackSchema — JSON Schema для structured output OpenAI.
// Держим как map: jsonschema.Definition из go-openai не умеет minItems/maxItems.
var audiencePackSchema = mustMarshal(map[string]any{
	"type": "object",
	"properties": map[string]any{
		"audiences": map[string]any{
			"type":     "array",
			"minItems": audienceCount,
			"maxItems": audienceCount,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"main_job":    map[string]any{"type": "string"},
					"trigger":     map[string]any{"type": "string"},
					"critical_subtasks": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": minSubtasks,
						"maxItems": maxSubtasks,
					},
					"digital_marketing_recos": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": minRecos,
						"maxItems": maxRecos,
					},
				},
				"required": []string{
					"name", "description", "main_job", "trigger",
					"critical_subtasks", "digital_marketing_recos",
				},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"audiences"},
	"additionalProperties": false,
})

type audiencePack struct {
	Audiences []Audience `json:"audiences"`
}

// validateAudiencePack отбрасывает ответы, нарушающие контракт схемы.
// Нарушение любой границы — полный отказ, без частичных результатов.
func validateAudiencePack(p audiencePack) error {
	if len(p.Audiences) != audienceCount {
		return fmt.Errorf("expected %d audiences, got %d", audienceCount, len(p.Audiences))
	}
	for i, a := range p.Audiences {
		if a.Name == "" || a.Description == "" || a.MainJob == "" || a.Trigger == "" {
			return fmt.Errorf("audience %d: missing required field", i+1)
		}
		if n := len(a.CriticalSubtasks); n < minSubtasks || n > maxSubtasks {
			return fmt.Errorf("audience %d: %d critical_subtasks, want %d..%d", i+1, n, minSubtasks, maxSubtasks)
		}
		if n := len(a.DigitalMarketingRecos); n < minRecos || n > maxRecos {
			return fmt.Errorf("audience %d: %d digital_marketing_recos, want %d..%d", i+1, n, minRecos, maxRecos)
		}
	}
	return nil
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
