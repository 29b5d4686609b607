package application

import (
	"context"

	"inventory-chat/domain"
)

// SyncObserver forwards item lifecycle notifications to the sync engine so
// the vector index mirrors the store. Hooks run synchronously inside the
// store mutation's call chain, so a sync failure fails the mutation's caller
// even though the store write itself has already happened.
type SyncObserver struct {
	sync *SyncService
}

// NewSyncObserver creates an observer backed by the given sync service.
func NewSyncObserver(sync *SyncService) *SyncObserver {
	return &SyncObserver{sync: sync}
}

func (o *SyncObserver) Created(ctx context.Context, item *domain.Item) error {
	return o.sync.SyncSingle(ctx, item)
}

func (o *SyncObserver) Updated(ctx context.Context, item *domain.Item) error {
	return o.sync.SyncSingle(ctx, item)
}

func (o *SyncObserver) Deleted(ctx context.Context, id int64) error {
	return o.sync.DeleteSingle(ctx, id)
}

func (o *SyncObserver) Restored(ctx context.Context, item *domain.Item) error {
	return o.sync.SyncSingle(ctx, item)
}
