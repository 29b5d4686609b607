package application

import (
	"context"
	"encoding/json"
	"fmt"

	"inventory-chat/domain"

	"go.uber.org/zap"
)

const systemPromptTemplate = `You are an intelligent assistant that helps users find information about products in our inventory.
Use the following item data to answer questions accurately:

%s

Guidelines:
- Be concise but helpful
- If you don't know the answer, say so
- Highlight unique features when relevant
- Never make up information not in the provided data`

// ChatService answers questions about the item inventory by retrieving the
// most relevant item payloads from the vector index and conditioning a
// completion provider on them. Each call is stateless; callers pass any prior
// turns with the request.
type ChatService struct {
	embedder  domain.EmbeddingClient
	index     domain.VectorIndex
	completer domain.CompletionClient
	topK      int
	logger    *zap.Logger
}

// NewChatService creates a ChatService. topK is the number of item payloads
// retrieved per question.
func NewChatService(embedder domain.EmbeddingClient, index domain.VectorIndex, completer domain.CompletionClient, topK int, logger *zap.Logger) *ChatService {
	return &ChatService{
		embedder:  embedder,
		index:     index,
		completer: completer,
		topK:      topK,
		logger:    logger,
	}
}

// Chat answers a question grounded in the retrieved item context. Retrieval
// failures degrade to an empty context rather than failing the chat: an
// answer without grounding beats no answer. Embedding and completion
// failures do propagate.
func (s *ChatService) Chat(ctx context.Context, question string, history []domain.Turn) (*domain.ChatResult, error) {
	contextItems, err := s.retrieveContext(ctx, question)
	if err != nil {
		return nil, err
	}

	messages := s.buildMessages(question, contextItems, history)

	answer, err := s.completer.Complete(ctx, messages)
	if err != nil {
		s.logger.Error("completion failed", zap.Error(err))
		return nil, domain.NewChatProviderError(err)
	}

	return &domain.ChatResult{
		Answer:   answer,
		Context:  contextItems,
		Messages: messages,
	}, nil
}

// retrieveContext embeds the question and searches the index for the topK
// most similar item payloads. A search failure is logged and yields an empty
// context; an embedding failure propagates.
func (s *ChatService) retrieveContext(ctx context.Context, question string) ([]domain.ItemPayload, error) {
	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		s.logger.Error("question embedding failed", zap.Error(err))
		return nil, err
	}

	payloads, err := s.index.Search(ctx, vector, s.topK)
	if err != nil {
		s.logger.Error("vector search failed, answering without context", zap.Error(err))
		return []domain.ItemPayload{}, nil
	}
	return payloads, nil
}

// buildMessages assembles the message sequence: system prompt with the
// retrieved context, then the caller-supplied history as-is, then the
// question.
func (s *ChatService) buildMessages(question string, contextItems []domain.ItemPayload, history []domain.Turn) []domain.Turn {
	messages := make([]domain.Turn, 0, len(history)+2)
	messages = append(messages, domain.Turn{
		Role:    domain.RoleSystem,
		Content: s.systemPrompt(contextItems),
	})
	messages = append(messages, history...)
	messages = append(messages, domain.Turn{
		Role:    domain.RoleUser,
		Content: question,
	})
	return messages
}

// systemPrompt serializes the retrieved payloads into the fixed instruction
// block. An empty context renders as an empty JSON array, which tells the
// model there are no matching items.
func (s *ChatService) systemPrompt(contextItems []domain.ItemPayload) string {
	if contextItems == nil {
		contextItems = []domain.ItemPayload{}
	}
	contextText, err := json.MarshalIndent(contextItems, "", "    ")
	if err != nil {
		contextText = []byte("[]")
	}
	return fmt.Sprintf(systemPromptTemplate, contextText)
}
