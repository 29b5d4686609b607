package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Item is one record in the item store. Identity (ID) is immutable once
// created; the store owns the timestamps.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EmbeddingText returns the text that represents this item for embedding:
// the non-empty name and description joined by a space. When both are empty
// it falls back to the item's JSON serialization, so the result is never
// empty and the embedding provider is never called with blank input.
func (i Item) EmbeddingText() string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(i.Name); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(i.Description); s != "" {
		parts = append(parts, s)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	data, err := json.Marshal(i)
	if err != nil {
		// Item contains only marshalable fields; this path is unreachable
		// but the fallback keeps the guarantee anyway.
		return strings.TrimSpace(i.Name + " " + i.Description)
	}
	return string(data)
}

// Payload converts the item into the payload stored alongside its vector.
func (i Item) Payload() ItemPayload {
	return ItemPayload{
		OriginalID:  i.ID,
		Name:        i.Name,
		Description: i.Description,
		CreatedAt:   i.CreatedAt.Format(time.DateTime),
		UpdatedAt:   i.UpdatedAt.Format(time.DateTime),
	}
}
