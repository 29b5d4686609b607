package embedding

import (
	"context"
	"errors"
	"strings"

	"inventory-chat/domain"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbeddingClient implements the domain.EmbeddingClient interface using
// the OpenAI embeddings API. Every returned vector is validated against the
// configured vector size.
type OpenAIEmbeddingClient struct {
	client     *openai.Client
	model      openai.EmbeddingModel // e.g., text-embedding-ada-002
	vectorSize int
}

// NewOpenAIEmbeddingClient creates a new OpenAIEmbeddingClient for the given
// model and expected vector size.
func NewOpenAIEmbeddingClient(apiKey string, model openai.EmbeddingModel, vectorSize int) (*OpenAIEmbeddingClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is not set")
	}
	return &OpenAIEmbeddingClient{
		client:     openai.NewClient(apiKey),
		model:      model,
		vectorSize: vectorSize,
	}, nil
}

// Embed generates the embedding for a single text.
func (c *OpenAIEmbeddingClient) Embed(ctx context.Context, text string) (domain.Embedding, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: text,
		Model: c.model,
	})
	if err != nil {
		return nil, domain.NewEmbeddingProviderError(err)
	}
	if len(resp.Data) == 0 {
		return nil, domain.NewEmbeddingProviderError(errors.New("provider returned no embeddings"))
	}

	vector := domain.Embedding(resp.Data[0].Embedding)
	if len(vector) != c.vectorSize {
		return nil, &domain.InvalidEmbeddingSizeError{Expected: c.vectorSize, Actual: len(vector), Index: -1}
	}
	return vector, nil
}

// EmbedBatch generates embeddings for the given texts in one provider call.
// Empty texts are filtered out first; the result is order-preserving and 1:1
// with the surviving inputs.
func (c *OpenAIEmbeddingClient) EmbedBatch(ctx context.Context, texts []string) ([]domain.Embedding, error) {
	inputs := make([]string, 0, len(texts))
	for _, t := range texts {
		if t := strings.TrimSpace(t); t != "" {
			inputs = append(inputs, t)
		}
	}
	if len(inputs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: inputs,
		Model: c.model,
	})
	if err != nil {
		return nil, domain.NewEmbeddingProviderError(err)
	}
	if len(resp.Data) != len(inputs) {
		return nil, domain.NewEmbeddingProviderError(errors.New("provider returned wrong number of embeddings"))
	}

	vectors := make([]domain.Embedding, len(resp.Data))
	for i, data := range resp.Data {
		if len(data.Embedding) != c.vectorSize {
			return nil, &domain.InvalidEmbeddingSizeError{Expected: c.vectorSize, Actual: len(data.Embedding), Index: i}
		}
		vectors[i] = domain.Embedding(data.Embedding)
	}
	return vectors, nil
}
