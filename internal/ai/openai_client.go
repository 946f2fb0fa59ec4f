package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// Фиксированные параметры генерации — пользователь их не настраивает.
	temperature = 0.6
	maxTokens   = 1800

	requestTimeout = 120 * time.Second
)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateAudiences делает один запрос к модели со strict-схемой audience_pack.
// Любая ошибка — сетевая, API, парсинг, нарушение схемы — это полный отказ:
// ретраев нет, частичный результат наружу не выходит.
func (c *OpenAIClient) GenerateAudiences(ctx context.Context, in ProjectInput) ([]Audience, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SegmentationPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(in)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "audience_pack",
				Schema: audiencePackSchema,
				Strict: true,
			},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		log.Println("[ai] OpenAI error:", err)
		return nil, fmt.Errorf("openai request: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Println("[ai] empty choices")
		return nil, fmt.Errorf("openai: empty choices")
	}

	raw := resp.Choices[0].Message.Content

	var pack audiencePack
	if err := json.Unmarshal([]byte(raw), &pack); err != nil {
		log.Printf("[ai] bad JSON from model: %v", err)
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}

	if err := validateAudiencePack(pack); err != nil {
		log.Printf("[ai] schema violation: %v", err)
		return nil, fmt.Errorf("openai: invalid audience pack: %w", err)
	}

	return pack.Audiences, nil
}
