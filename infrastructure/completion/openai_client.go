package completion

import (
	"context"
	"errors"

	"inventory-chat/domain"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements the domain.CompletionClient interface using the
// OpenAI chat completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIClient creates a new OpenAIClient with fixed sampling parameters.
func NewOpenAIClient(apiKey, model string, temperature float32, maxTokens int) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is not set")
	}
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Complete sends the message sequence to the chat completions API and
// returns the top choice's text.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.Turn) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		chatMessages[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
