package completion

import (
	"context"
	"errors"
	"strings"

	"inventory-chat/domain"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient implements the domain.CompletionClient interface using the
// Anthropic Messages API.
type AnthropicClient struct {
	client      *anthropic.Client
	model       anthropic.Model
	temperature float64
	maxTokens   int64
}

// NewAnthropicClient creates a new AnthropicClient with fixed sampling
// parameters.
func NewAnthropicClient(apiKey, model string, temperature float64, maxTokens int64) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is not set")
	}
	m := anthropic.ModelClaude3_7SonnetLatest
	if model != "" {
		m = anthropic.Model(model)
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:      &client,
		model:       m,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Complete sends the message sequence to the Messages API. System turns
// become the system prompt; the remaining turns map to user and assistant
// messages.
func (c *AnthropicClient) Complete(ctx context.Context, messages []domain.Turn) (string, error) {
	var system []anthropic.TextBlockParam
	conversation := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case domain.RoleAssistant:
			conversation = append(conversation, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			conversation = append(conversation, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		System:      system,
		Messages:    conversation,
		Temperature: anthropic.Float(c.temperature),
	})
	if err != nil {
		return "", err
	}

	var answer strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			answer.WriteString(content.Text)
		}
	}
	return answer.String(), nil
}
