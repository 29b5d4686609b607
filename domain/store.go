package domain

import (
	"context"
	"errors"
)

// ErrItemNotFound is returned by the item store when no live item has the
// requested ID.
var ErrItemNotFound = errors.New("item not found")

// ItemStore is the authoritative record store. Delete is a soft delete so
// that Restore can bring an item back.
type ItemStore interface {
	Create(ctx context.Context, name, description string) (*Item, error)
	Update(ctx context.Context, id int64, name, description string) (*Item, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*Item, error)
	Find(ctx context.Context, id int64) (*Item, error)
	// FindWithDeleted looks an item up regardless of soft-delete state. The
	// sync engine uses it to decide whether a delete notification refers to
	// an item the store still knows about.
	FindWithDeleted(ctx context.Context, id int64) (*Item, error)
	All(ctx context.Context) ([]Item, error)
}

// ItemObserver receives item lifecycle notifications. The store invokes the
// hooks synchronously after each successful mutation; a hook failure
// propagates to the store's caller, but the mutation itself is not rolled
// back.
type ItemObserver interface {
	Created(ctx context.Context, item *Item) error
	Updated(ctx context.Context, item *Item) error
	Deleted(ctx context.Context, id int64) error
	Restored(ctx context.Context, item *Item) error
}
