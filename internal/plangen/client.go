package plangen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Generator proposes representative training weeks for a request.
type Generator interface {
	GenerateWeeks(ctx context.Context, req Request) ([]WeekTemplate, error)
}

// Client generates training weeks through the OpenAI chat completions API
// with a JSON schema constrained response.
type Client struct {
	client openai.Client
	logger *slog.Logger
}

// NewClient creates an OpenAI-backed generator. Extra request options are
// passed through, which lets tests swap the HTTP client.
func NewClient(apiKey string, logger *slog.Logger, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &Client{
		client: openai.NewClient(opts...),
		logger: logger,
	}
}

func (c *Client) GenerateWeeks(ctx context.Context, req Request) ([]WeekTemplate, error) {
	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(req)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "training_weeks",
					Description: openai.String("Representative training weeks for a stage race plan"),
					Schema:      templatesSchema(),
					Strict:      openai.Bool(true),
				},
			},
		},
		Model: openai.ChatModelGPT4o,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var payload struct {
		Weeks []WeekTemplate `json:"weeks"`
	}
	if err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("parse training weeks: %w", err)
	}

	if err = validateTemplates(payload.Weeks, req.Profile.TrainingDaysPerWeek); err != nil {
		return nil, fmt.Errorf("validate training weeks: %w", err)
	}

	c.logger.LogAttrs(ctx, slog.LevelInfo, "generated training weeks",
		slog.Int("weeks", len(payload.Weeks)),
		slog.Int64("totalTokens", chat.Usage.TotalTokens))

	return payload.Weeks, nil
}
