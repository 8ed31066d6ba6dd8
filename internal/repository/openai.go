package repository

import (
	"context"
	"strings"

	"summy-bot/internal/domain"
	apperrors "summy-bot/pkg/errors"

	"github.com/sashabaranov/go-openai"
)

const (
	completionMaxTokens   = 2048
	completionTemperature = 0.7
)

// OpenAIClient implements domain.CompletionClient using the OpenAI chat
// completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger domain.Logger
}

// NewOpenAIClient creates a new completion client
func NewOpenAIClient(apiKey, model string, logger domain.Logger) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// Complete sends the prompt as a single user message and returns the reply text
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
		N:           1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.logger.Error("Completion API call failed", err, "model", c.model)
		return "", apperrors.NewCompletionError("completion API call failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewCompletionError("completion returned no choices", nil)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Info("Completion received", "model", c.model, "words", len(strings.Fields(text)))
	return text, nil
}
