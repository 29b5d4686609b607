package vectorstore

import (
	"context"
	"testing"

	"inventory-chat/domain"

	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeCollections struct {
	getErr     error
	createErr  error
	created    *qdrant.CreateCollection
	getCalls   int
	createCall int
}

func (f *fakeCollections) Get(ctx context.Context, in *qdrant.GetCollectionInfoRequest, opts ...grpc.CallOption) (*qdrant.GetCollectionInfoResponse, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &qdrant.GetCollectionInfoResponse{}, nil
}

func (f *fakeCollections) Create(ctx context.Context, in *qdrant.CreateCollection, opts ...grpc.CallOption) (*qdrant.CollectionOperationResponse, error) {
	f.createCall++
	f.created = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &qdrant.CollectionOperationResponse{}, nil
}

type fakePoints struct {
	upsertErr error
	upserted  *qdrant.UpsertPoints

	deleteErr error
	deleted   *qdrant.DeletePoints

	scrollErr    error
	scrollResult []*qdrant.RetrievedPoint
	scrolled     *qdrant.ScrollPoints

	searchErr    error
	searchResult []*qdrant.ScoredPoint
	searched     *qdrant.SearchPoints
}

func (f *fakePoints) Upsert(ctx context.Context, in *qdrant.UpsertPoints, opts ...grpc.CallOption) (*qdrant.PointsOperationResponse, error) {
	f.upserted = in
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	return &qdrant.PointsOperationResponse{}, nil
}

func (f *fakePoints) Delete(ctx context.Context, in *qdrant.DeletePoints, opts ...grpc.CallOption) (*qdrant.PointsOperationResponse, error) {
	f.deleted = in
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &qdrant.PointsOperationResponse{}, nil
}

func (f *fakePoints) Scroll(ctx context.Context, in *qdrant.ScrollPoints, opts ...grpc.CallOption) (*qdrant.ScrollResponse, error) {
	f.scrolled = in
	if f.scrollErr != nil {
		return nil, f.scrollErr
	}
	return &qdrant.ScrollResponse{Result: f.scrollResult}, nil
}

func (f *fakePoints) Search(ctx context.Context, in *qdrant.SearchPoints, opts ...grpc.CallOption) (*qdrant.SearchResponse, error) {
	f.searched = in
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &qdrant.SearchResponse{Result: f.searchResult}, nil
}

func newTestClient(collections *fakeCollections, points *fakePoints) *QdrantClient {
	return &QdrantClient{
		collections:    collections,
		points:         points,
		collectionName: "items",
		vectorSize:     1536,
		distance:       qdrant.Distance_Cosine,
		logger:         zap.NewNop(),
	}
}

func TestEnsureCollectionAlreadyExists(t *testing.T) {
	collections := &fakeCollections{}
	client := newTestClient(collections, &fakePoints{})

	require.NoError(t, client.EnsureCollection(context.Background()))
	assert.Equal(t, 1, collections.getCalls)
	assert.Zero(t, collections.createCall)
}

func TestEnsureCollectionCreatesWhenMissing(t *testing.T) {
	collections := &fakeCollections{getErr: status.Error(codes.NotFound, "collection not found")}
	client := newTestClient(collections, &fakePoints{})

	require.NoError(t, client.EnsureCollection(context.Background()))

	require.Equal(t, 1, collections.createCall)
	require.NotNil(t, collections.created)
	assert.Equal(t, "items", collections.created.CollectionName)
	params := collections.created.GetVectorsConfig().GetParams()
	require.NotNil(t, params)
	assert.Equal(t, uint64(1536), params.Size)
	assert.Equal(t, qdrant.Distance_Cosine, params.Distance)
	assert.Equal(t, uint64(2), collections.created.GetOptimizersConfig().GetDefaultSegmentNumber())
}

func TestEnsureCollectionHardFailsOnOtherErrors(t *testing.T) {
	collections := &fakeCollections{getErr: status.Error(codes.Unavailable, "connection refused")}
	client := newTestClient(collections, &fakePoints{})

	err := client.EnsureCollection(context.Background())

	var unavailable *domain.IndexUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Zero(t, collections.createCall, "a non-missing failure must not trigger creation")
}

func TestEnsureCollectionCreateFailure(t *testing.T) {
	collections := &fakeCollections{
		getErr:    status.Error(codes.NotFound, "collection not found"),
		createErr: status.Error(codes.Internal, "disk full"),
	}
	client := newTestClient(collections, &fakePoints{})

	var unavailable *domain.IndexUnavailableError
	require.ErrorAs(t, client.EnsureCollection(context.Background()), &unavailable)
}

func TestUpsertMapsPointsAndWaits(t *testing.T) {
	points := &fakePoints{}
	client := newTestClient(&fakeCollections{}, points)

	err := client.Upsert(context.Background(), []domain.ItemPoint{{
		ID:     "11111111-2222-3333-4444-555555555555",
		Vector: domain.Embedding{0.1, 0.2},
		Payload: domain.ItemPayload{
			OriginalID:  7,
			Name:        "Widget",
			Description: "A gadget",
			CreatedAt:   "2025-03-01 10:30:00",
			UpdatedAt:   "2025-03-01 11:30:00",
		},
	}})

	require.NoError(t, err)
	require.NotNil(t, points.upserted)
	assert.Equal(t, "items", points.upserted.CollectionName)
	assert.True(t, points.upserted.GetWait())
	require.Len(t, points.upserted.Points, 1)

	p := points.upserted.Points[0]
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", p.GetId().GetUuid())
	assert.Equal(t, []float32{0.1, 0.2}, p.GetVectors().GetVector().GetData())
	assert.Equal(t, int64(7), p.Payload["original_id"].GetIntegerValue())
	assert.Equal(t, "Widget", p.Payload["name"].GetStringValue())
}

func TestUpsertFailureCarriesStatus(t *testing.T) {
	points := &fakePoints{upsertErr: status.Error(codes.InvalidArgument, "wrong vector size")}
	client := newTestClient(&fakeCollections{}, points)

	err := client.Upsert(context.Background(), []domain.ItemPoint{{ID: "a", Vector: domain.Embedding{1}}})

	var writeErr *domain.IndexWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "upsert", writeErr.Op)
	assert.Equal(t, codes.InvalidArgument.String(), writeErr.Status)
	assert.Contains(t, writeErr.Body, "wrong vector size")
}

func TestDeleteByPointIDTreatsNotFoundAsSuccess(t *testing.T) {
	points := &fakePoints{deleteErr: status.Error(codes.NotFound, "no such point")}
	client := newTestClient(&fakeCollections{}, points)

	require.NoError(t, client.DeleteByPointID(context.Background(), "gone"))
}

func TestDeleteByPointIDSurfacesOtherFailures(t *testing.T) {
	points := &fakePoints{deleteErr: status.Error(codes.Internal, "boom")}
	client := newTestClient(&fakeCollections{}, points)

	var writeErr *domain.IndexWriteError
	require.ErrorAs(t, client.DeleteByPointID(context.Background(), "p"), &writeErr)
	assert.Equal(t, "delete", writeErr.Op)
}

func TestFindPointIDByOriginalID(t *testing.T) {
	points := &fakePoints{scrollResult: []*qdrant.RetrievedPoint{{
		Id: &qdrant.PointId{PointIdOptions: &qdrant.PointId_Uuid{Uuid: "found-uuid"}},
	}}}
	client := newTestClient(&fakeCollections{}, points)

	id, found, err := client.FindPointIDByOriginalID(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "found-uuid", id)

	require.NotNil(t, points.scrolled)
	require.Len(t, points.scrolled.GetFilter().GetMust(), 1)
	field := points.scrolled.GetFilter().GetMust()[0].GetField()
	require.NotNil(t, field)
	assert.Equal(t, "original_id", field.Key)
	assert.Equal(t, int64(7), field.GetMatch().GetInteger())
	assert.Equal(t, uint32(1), points.scrolled.GetLimit())
}

func TestFindPointIDByOriginalIDNoMatch(t *testing.T) {
	client := newTestClient(&fakeCollections{}, &fakePoints{})

	_, found, err := client.FindPointIDByOriginalID(context.Background(), 7)

	require.NoError(t, err, "no match is not an error")
	assert.False(t, found)
}

func TestSearchReturnsRankedPayloads(t *testing.T) {
	points := &fakePoints{searchResult: []*qdrant.ScoredPoint{
		{Payload: payloadToQdrant(domain.ItemPayload{OriginalID: 1, Name: "Widget"})},
		{Payload: payloadToQdrant(domain.ItemPayload{OriginalID: 2, Name: "Sprocket"})},
	}}
	client := newTestClient(&fakeCollections{}, points)

	payloads, err := client.Search(context.Background(), domain.Embedding{0.5}, 5)

	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, int64(1), payloads[0].OriginalID)
	assert.Equal(t, "Sprocket", payloads[1].Name)

	require.NotNil(t, points.searched)
	assert.Equal(t, uint64(5), points.searched.Limit)
	assert.True(t, points.searched.GetWithPayload().GetEnable())
	assert.False(t, points.searched.GetWithVectors().GetEnable())
}

func TestParseDistance(t *testing.T) {
	d, err := parseDistance("")
	require.NoError(t, err)
	assert.Equal(t, qdrant.Distance_Cosine, d)

	_, err = parseDistance("Chebyshev")
	require.Error(t, err)
}
