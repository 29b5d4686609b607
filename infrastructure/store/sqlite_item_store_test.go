package store

import (
	"context"
	"errors"
	"testing"

	"inventory-chat/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []string
	err    error
}

func (o *recordingObserver) Created(ctx context.Context, item *domain.Item) error {
	o.events = append(o.events, "created")
	return o.err
}

func (o *recordingObserver) Updated(ctx context.Context, item *domain.Item) error {
	o.events = append(o.events, "updated")
	return o.err
}

func (o *recordingObserver) Deleted(ctx context.Context, id int64) error {
	o.events = append(o.events, "deleted")
	return o.err
}

func (o *recordingObserver) Restored(ctx context.Context, item *domain.Item) error {
	o.events = append(o.events, "restored")
	return o.err
}

func newTestStore(t *testing.T) (*SQLiteItemStore, *recordingObserver) {
	t.Helper()
	s, err := NewSQLiteItemStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	observer := &recordingObserver{}
	s.SetObserver(observer)
	return s, observer
}

func TestCreateAndFind(t *testing.T) {
	s, observer := newTestStore(t)
	ctx := context.Background()

	item, err := s.Create(ctx, "Widget", "A gadget")
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.False(t, item.CreatedAt.IsZero())
	assert.Equal(t, []string{"created"}, observer.events)

	found, err := s.Find(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", found.Name)
	assert.Equal(t, "A gadget", found.Description)
}

func TestCreateValidation(t *testing.T) {
	s, observer := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "   ", "desc")
	require.Error(t, err)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}
	_, err = s.Create(ctx, string(long), "")
	require.Error(t, err)
	assert.Empty(t, observer.events, "failed validation must not fire hooks")
}

func TestUpdate(t *testing.T) {
	s, observer := newTestStore(t)
	ctx := context.Background()

	item, err := s.Create(ctx, "Widget", "A gadget")
	require.NoError(t, err)

	updated, err := s.Update(ctx, item.ID, "Widget v2", "")
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, item.CreatedAt, updated.CreatedAt)
	assert.Equal(t, []string{"created", "updated"}, observer.events)

	_, err = s.Update(ctx, 999, "Nope", "")
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	s, observer := newTestStore(t)
	ctx := context.Background()

	item, err := s.Create(ctx, "Widget", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, item.ID))

	_, err = s.Find(ctx, item.ID)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	// The soft-deleted row is still visible to the sync engine's
	// existence check.
	trashed, err := s.FindWithDeleted(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, trashed.ID)

	items, err := s.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	restored, err := s.Restore(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, restored.ID)

	items, err = s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, []string{"created", "deleted", "restored"}, observer.events)
}

func TestDeleteMissingItem(t *testing.T) {
	s, _ := newTestStore(t)
	require.ErrorIs(t, s.Delete(context.Background(), 42), domain.ErrItemNotFound)
}

func TestRestoreLiveItemFails(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item, err := s.Create(ctx, "Widget", "")
	require.NoError(t, err)

	_, err = s.Restore(ctx, item.ID)
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestHookFailurePropagatesButRowPersists(t *testing.T) {
	s, observer := newTestStore(t)
	ctx := context.Background()

	observer.err = errors.New("index unavailable")
	created, err := s.Create(ctx, "Widget", "")
	require.Error(t, err)
	assert.Nil(t, created)

	// The mutation is not rolled back on hook failure.
	observer.err = nil
	items, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Name)
}

func TestAllOrdersByID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Widget", "Sprocket", "Gizmo"} {
		_, err := s.Create(ctx, name, "")
		require.NoError(t, err)
	}

	items, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Widget", items[0].Name)
	assert.Equal(t, "Gizmo", items[2].Name)
}
