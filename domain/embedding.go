package domain

import "context"

// Embedding represents a numerical vector representation of text.
type Embedding []float32

// EmbeddingClient defines the interface for generating embeddings from text.
// Implementations guarantee every returned vector has the configured length;
// a provider response of any other length is an error, never truncated or
// padded.
type EmbeddingClient interface {
	// Embed generates the embedding for a single text. The text must be
	// non-empty after trimming.
	Embed(ctx context.Context, text string) (Embedding, error)
	// EmbedBatch generates embeddings for the given texts in one provider
	// call. Empty texts are filtered out beforehand; the returned vectors are
	// order-preserving and 1:1 with the surviving inputs. ErrEmptyBatch is
	// returned when nothing survives the filter.
	EmbedBatch(ctx context.Context, texts []string) ([]Embedding, error)
}
