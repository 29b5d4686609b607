package domain

import "context"

// ItemPayload is the payload stored with each point in the vector index.
// OriginalID links the point back to the item in the store; the point ID
// itself is independent and recoverable only via a payload-filtered lookup.
type ItemPayload struct {
	OriginalID  int64  `json:"original_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ItemPoint is one entry in the vector index: a UUID point ID, the item's
// embedding vector, and the item payload.
type ItemPoint struct {
	ID      string
	Vector  Embedding
	Payload ItemPayload
}

// VectorIndex defines the interface for interacting with the vector database.
type VectorIndex interface {
	// EnsureCollection checks that the collection exists and creates it with
	// the configured vector size and distance metric if missing. Idempotent.
	EnsureCollection(ctx context.Context) error
	// Upsert adds or updates the given points in one call.
	Upsert(ctx context.Context, points []ItemPoint) error
	// DeleteByPointID removes a point. Deleting a point the index does not
	// know is success; deletion is idempotent.
	DeleteByPointID(ctx context.Context, pointID string) error
	// FindPointIDByOriginalID resolves an item ID to its point ID via a
	// payload-filtered lookup. No match is reported via found=false, not an
	// error.
	FindPointIDByOriginalID(ctx context.Context, originalID int64) (pointID string, found bool, err error)
	// Search returns up to limit payloads nearest to the vector, most
	// similar first.
	Search(ctx context.Context, vector Embedding, limit int) ([]ItemPayload, error)
}
