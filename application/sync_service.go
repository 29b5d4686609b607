package application

import (
	"context"
	"errors"

	"inventory-chat/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncService reconciles the item store with the vector index. It holds no
// state of its own; the index's current contents are the only record of what
// has been synced.
//
// There is no per-item mutual exclusion: concurrent SyncSingle calls for
// different items are independent, but a SyncSingle racing a DeleteSingle for
// the same item is last-write-wins and can leave a dangling or missing point.
type SyncService struct {
	store      domain.ItemStore
	embedder   domain.EmbeddingClient
	index      domain.VectorIndex
	vectorSize int
	logger     *zap.Logger
}

// NewSyncService creates a SyncService with the given dependencies.
func NewSyncService(store domain.ItemStore, embedder domain.EmbeddingClient, index domain.VectorIndex, vectorSize int, logger *zap.Logger) *SyncService {
	return &SyncService{
		store:      store,
		embedder:   embedder,
		index:      index,
		vectorSize: vectorSize,
		logger:     logger,
	}
}

// FullSync embeds every item in the store and bulk-upserts the points in a
// single call, returning the number of points written. An empty store is a
// no-op returning 0. Items whose embedding comes back with the wrong length
// are logged and skipped; an index write failure aborts the whole sync.
//
// Every run generates fresh point IDs, so repeated full syncs accumulate
// duplicate points unless the collection is cleared externally. Known
// limitation.
func (s *SyncService) FullSync(ctx context.Context) (int, error) {
	if err := s.index.EnsureCollection(ctx); err != nil {
		return 0, domain.NewSyncFailedError("full sync", 0, err)
	}

	items, err := s.store.All(ctx)
	if err != nil {
		return 0, domain.NewSyncFailedError("full sync", 0, err)
	}
	if len(items) == 0 {
		s.logger.Info("no items to sync")
		return 0, nil
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.EmbeddingText()
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, domain.NewSyncFailedError("full sync", 0, err)
	}

	points := make([]domain.ItemPoint, 0, len(items))
	for i, item := range items {
		if i >= len(vectors) || len(vectors[i]) != s.vectorSize {
			s.logger.Error("invalid embedding for item, skipping",
				zap.Int64("item_id", item.ID),
				zap.Int("expected_size", s.vectorSize))
			continue
		}
		points = append(points, domain.ItemPoint{
			ID:      uuid.NewString(),
			Vector:  vectors[i],
			Payload: item.Payload(),
		})
	}
	if len(points) == 0 {
		return 0, domain.NewSyncFailedError("full sync", 0, errors.New("no valid points to sync"))
	}

	if err := s.index.Upsert(ctx, points); err != nil {
		s.logger.Error("full sync upsert failed", zap.Int("points", len(points)), zap.Error(err))
		return 0, domain.NewSyncFailedError("full sync", 0, err)
	}

	s.logger.Info("full sync complete", zap.Int("points", len(points)))
	return len(points), nil
}

// SyncSingle embeds one item and upserts a single point carrying the item's
// ID in its payload. Any failure is surfaced to the caller; the store
// mutation that triggered the sync is not rolled back, so a failure leaves
// the index behind the store until the next sync.
func (s *SyncService) SyncSingle(ctx context.Context, item *domain.Item) error {
	if err := s.index.EnsureCollection(ctx); err != nil {
		return domain.NewSyncFailedError("sync", item.ID, err)
	}

	vector, err := s.embedder.Embed(ctx, item.EmbeddingText())
	if err != nil {
		s.logger.Error("embedding failed", zap.Int64("item_id", item.ID), zap.Error(err))
		return domain.NewSyncFailedError("sync", item.ID, err)
	}

	point := domain.ItemPoint{
		ID:      uuid.NewString(),
		Vector:  vector,
		Payload: item.Payload(),
	}
	if err := s.index.Upsert(ctx, []domain.ItemPoint{point}); err != nil {
		s.logger.Error("upsert failed", zap.Int64("item_id", item.ID), zap.Error(err))
		return domain.NewSyncFailedError("sync", item.ID, err)
	}

	s.logger.Debug("item synced", zap.Int64("item_id", item.ID), zap.String("point_id", point.ID))
	return nil
}

// DeleteSingle removes the point mirroring the given item. It is idempotent:
// a missing item, a missing point, or an index that already forgot the point
// all count as success.
func (s *SyncService) DeleteSingle(ctx context.Context, itemID int64) error {
	if _, err := s.store.FindWithDeleted(ctx, itemID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			s.logger.Debug("item not found in store, skipping delete", zap.Int64("item_id", itemID))
			return nil
		}
		return domain.NewSyncFailedError("delete", itemID, err)
	}

	pointID, found, err := s.index.FindPointIDByOriginalID(ctx, itemID)
	if err != nil {
		s.logger.Error("point lookup failed", zap.Int64("item_id", itemID), zap.Error(err))
		return domain.NewSyncFailedError("delete", itemID, err)
	}
	if !found {
		s.logger.Debug("no point for item, skipping delete", zap.Int64("item_id", itemID))
		return nil
	}

	if err := s.index.DeleteByPointID(ctx, pointID); err != nil {
		s.logger.Error("point delete failed",
			zap.Int64("item_id", itemID),
			zap.String("point_id", pointID),
			zap.Error(err))
		return domain.NewSyncFailedError("delete", itemID, err)
	}

	s.logger.Debug("item removed from index", zap.Int64("item_id", itemID), zap.String("point_id", pointID))
	return nil
}
