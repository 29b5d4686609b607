package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch is returned when a batch embedding request contains no
// non-empty text after trimming.
var ErrEmptyBatch = errors.New("no embeddable text in batch")

// EmbeddingProviderError indicates the upstream embedding call failed.
//
// The underlying provider error can be accessed via errors.Unwrap.
type EmbeddingProviderError struct {
	cause error
}

// NewEmbeddingProviderError wraps a provider failure.
func NewEmbeddingProviderError(cause error) *EmbeddingProviderError {
	return &EmbeddingProviderError{cause: cause}
}

func (e *EmbeddingProviderError) Error() string {
	return fmt.Sprintf("embedding provider request failed: %v", e.cause)
}

func (e *EmbeddingProviderError) Unwrap() error { return e.cause }

// InvalidEmbeddingSizeError indicates a provider returned a vector whose
// length does not match the configured embedding size. Always fatal to the
// enclosing operation; vectors are never truncated or padded. Index is the
// position of the offending vector in a batch, or -1 for a single embedding.
type InvalidEmbeddingSizeError struct {
	Expected int
	Actual   int
	Index    int
}

func (e *InvalidEmbeddingSizeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid embedding size at batch index %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
	}
	return fmt.Sprintf("invalid embedding size: expected %d, got %d", e.Expected, e.Actual)
}

// IndexUnavailableError indicates the collection existence check or creation
// failed for a reason other than the collection being missing.
type IndexUnavailableError struct {
	Collection string
	cause      error
}

// NewIndexUnavailableError wraps a collection check/creation failure.
func NewIndexUnavailableError(collection string, cause error) *IndexUnavailableError {
	return &IndexUnavailableError{Collection: collection, cause: cause}
}

func (e *IndexUnavailableError) Error() string {
	return fmt.Sprintf("vector index unavailable for collection %q: %v", e.Collection, e.cause)
}

func (e *IndexUnavailableError) Unwrap() error { return e.cause }

// IndexWriteError indicates an upsert or delete against the vector index
// failed. Status and Body carry the index's response for diagnosis.
type IndexWriteError struct {
	Op     string
	Status string
	Body   string
	cause  error
}

// NewIndexWriteError wraps a failed index write.
func NewIndexWriteError(op, status, body string, cause error) *IndexWriteError {
	return &IndexWriteError{Op: op, Status: status, Body: body, cause: cause}
}

func (e *IndexWriteError) Error() string {
	return fmt.Sprintf("vector index %s failed: status %s: %s", e.Op, e.Status, e.Body)
}

func (e *IndexWriteError) Unwrap() error { return e.cause }

// SyncFailedError wraps any failure during a sync engine operation. ItemID is
// zero for whole-store operations.
type SyncFailedError struct {
	Op     string
	ItemID int64
	cause  error
}

// NewSyncFailedError wraps a sync operation failure.
func NewSyncFailedError(op string, itemID int64, cause error) *SyncFailedError {
	return &SyncFailedError{Op: op, ItemID: itemID, cause: cause}
}

func (e *SyncFailedError) Error() string {
	if e.ItemID != 0 {
		return fmt.Sprintf("%s failed for item %d: %v", e.Op, e.ItemID, e.cause)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.cause)
}

func (e *SyncFailedError) Unwrap() error { return e.cause }

// ChatProviderError indicates the completion provider call failed.
type ChatProviderError struct {
	cause error
}

// NewChatProviderError wraps a completion provider failure.
func NewChatProviderError(cause error) *ChatProviderError {
	return &ChatProviderError{cause: cause}
}

func (e *ChatProviderError) Error() string {
	return fmt.Sprintf("completion provider request failed: %v", e.cause)
}

func (e *ChatProviderError) Unwrap() error { return e.cause }
