package vectorstore

import (
	"context"
	"fmt"

	"inventory-chat/domain"

	qdrant "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

// payloadKeyOriginalID is the payload field linking a point back to its item.
const payloadKeyOriginalID = "original_id"

// collectionsAPI is the subset of qdrant.CollectionsClient this client uses.
type collectionsAPI interface {
	Get(ctx context.Context, in *qdrant.GetCollectionInfoRequest, opts ...grpc.CallOption) (*qdrant.GetCollectionInfoResponse, error)
	Create(ctx context.Context, in *qdrant.CreateCollection, opts ...grpc.CallOption) (*qdrant.CollectionOperationResponse, error)
}

// pointsAPI is the subset of qdrant.PointsClient this client uses.
type pointsAPI interface {
	Upsert(ctx context.Context, in *qdrant.UpsertPoints, opts ...grpc.CallOption) (*qdrant.PointsOperationResponse, error)
	Delete(ctx context.Context, in *qdrant.DeletePoints, opts ...grpc.CallOption) (*qdrant.PointsOperationResponse, error)
	Scroll(ctx context.Context, in *qdrant.ScrollPoints, opts ...grpc.CallOption) (*qdrant.ScrollResponse, error)
	Search(ctx context.Context, in *qdrant.SearchPoints, opts ...grpc.CallOption) (*qdrant.SearchResponse, error)
}

// QdrantClient implements the domain.VectorIndex interface against a Qdrant
// server.
type QdrantClient struct {
	collections    collectionsAPI
	points         pointsAPI
	collectionName string
	vectorSize     uint64
	distance       qdrant.Distance
	logger         *zap.Logger
}

// NewQdrantClient connects to Qdrant at addr and returns a client scoped to
// the given collection. The collection itself is created lazily by
// EnsureCollection.
func NewQdrantClient(addr, collectionName string, vectorSize int, distanceMetric string, logger *zap.Logger) (*QdrantClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("could not connect to Qdrant: %w", err)
	}

	distance, err := parseDistance(distanceMetric)
	if err != nil {
		return nil, err
	}

	return &QdrantClient{
		collections:    qdrant.NewCollectionsClient(conn),
		points:         qdrant.NewPointsClient(conn),
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
		distance:       distance,
		logger:         logger,
	}, nil
}

func parseDistance(metric string) (qdrant.Distance, error) {
	switch metric {
	case "", "Cosine":
		return qdrant.Distance_Cosine, nil
	case "Euclid":
		return qdrant.Distance_Euclid, nil
	case "Dot":
		return qdrant.Distance_Dot, nil
	case "Manhattan":
		return qdrant.Distance_Manhattan, nil
	default:
		return qdrant.Distance_UnknownDistance, fmt.Errorf("unknown distance metric %q", metric)
	}
}

// EnsureCollection checks that the collection exists and creates it with the
// configured vector size and distance metric if Qdrant reports it missing.
// Any other failure on the existence check is a hard error, not a trigger to
// create.
func (c *QdrantClient) EnsureCollection(ctx context.Context) error {
	_, err := c.collections.Get(ctx, &qdrant.GetCollectionInfoRequest{
		CollectionName: c.collectionName,
	})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return domain.NewIndexUnavailableError(c.collectionName, err)
	}

	c.logger.Info("collection does not exist, creating",
		zap.String("collection", c.collectionName),
		zap.Uint64("vector_size", c.vectorSize))

	_, err = c.collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: c.collectionName,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     c.vectorSize,
					Distance: c.distance,
				},
			},
		},
		OptimizersConfig: &qdrant.OptimizersConfigDiff{
			DefaultSegmentNumber: proto.Uint64(2),
			IndexingThreshold:    proto.Uint64(100),
		},
	})
	if err != nil {
		return domain.NewIndexUnavailableError(c.collectionName, err)
	}

	c.logger.Info("collection created", zap.String("collection", c.collectionName))
	return nil
}

// Upsert writes the given points in one call, waiting for the write to be
// acknowledged.
func (c *QdrantClient) Upsert(ctx context.Context, points []domain.ItemPoint) error {
	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      &qdrant.PointId{PointIdOptions: &qdrant.PointId_Uuid{Uuid: p.ID}},
			Vectors: &qdrant.Vectors{VectorsOptions: &qdrant.Vectors_Vector{Vector: &qdrant.Vector{Data: p.Vector}}},
			Payload: payloadToQdrant(p.Payload),
		}
	}

	_, err := c.points.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collectionName,
		Points:         qdrantPoints,
		Wait:           proto.Bool(true),
	})
	if err != nil {
		return c.writeError("upsert", err)
	}
	return nil
}

// DeleteByPointID removes a single point. A NotFound response counts as
// success so that deletion stays idempotent.
func (c *QdrantClient) DeleteByPointID(ctx context.Context, pointID string) error {
	_, err := c.points.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: c.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{{PointIdOptions: &qdrant.PointId_Uuid{Uuid: pointID}}},
				},
			},
		},
		Wait: proto.Bool(true),
	})
	if err != nil && status.Code(err) != codes.NotFound {
		return c.writeError("delete", err)
	}
	return nil
}

// FindPointIDByOriginalID scrolls the collection for the first point whose
// payload original_id matches. No match is not an error.
func (c *QdrantClient) FindPointIDByOriginalID(ctx context.Context, originalID int64) (string, bool, error) {
	resp, err := c.points.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: c.collectionName,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{{
				ConditionOneOf: &qdrant.Condition_Field{
					Field: &qdrant.FieldCondition{
						Key:   payloadKeyOriginalID,
						Match: &qdrant.Match{MatchValue: &qdrant.Match_Integer{Integer: originalID}},
					},
				},
			}},
		},
		Limit: proto.Uint32(1),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to scroll points in Qdrant: %w", err)
	}

	result := resp.GetResult()
	if len(result) == 0 {
		return "", false, nil
	}
	id := result[0].GetId()
	if uuidVal, ok := id.GetPointIdOptions().(*qdrant.PointId_Uuid); ok {
		return uuidVal.Uuid, true, nil
	}
	return "", false, nil
}

// Search returns up to limit payloads nearest to the vector, ranked most
// similar first. Vectors are not returned.
func (c *QdrantClient) Search(ctx context.Context, vector domain.Embedding, limit int) ([]domain.ItemPayload, error) {
	resp, err := c.points.Search(ctx, &qdrant.SearchPoints{
		CollectionName: c.collectionName,
		Vector:         vector,
		Limit:          uint64(limit),
		WithPayload: &qdrant.WithPayloadSelector{
			SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true},
		},
		WithVectors: &qdrant.WithVectorsSelector{
			SelectorOptions: &qdrant.WithVectorsSelector_Enable{Enable: false},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search points in Qdrant: %w", err)
	}

	payloads := make([]domain.ItemPayload, 0, len(resp.GetResult()))
	for _, hit := range resp.GetResult() {
		payload := hit.GetPayload()
		if payload == nil {
			continue
		}
		payloads = append(payloads, payloadFromQdrant(payload))
	}
	return payloads, nil
}

// writeError converts a gRPC failure into an IndexWriteError carrying the
// status code and message for diagnosis.
func (c *QdrantClient) writeError(op string, err error) error {
	st := status.Convert(err)
	c.logger.Error("qdrant write failed",
		zap.String("op", op),
		zap.String("collection", c.collectionName),
		zap.String("status", st.Code().String()),
		zap.String("detail", st.Message()))
	return domain.NewIndexWriteError(op, st.Code().String(), st.Message(), err)
}

// payloadToQdrant converts an item payload to the Qdrant value map.
func payloadToQdrant(p domain.ItemPayload) map[string]*qdrant.Value {
	return map[string]*qdrant.Value{
		payloadKeyOriginalID: {Kind: &qdrant.Value_IntegerValue{IntegerValue: p.OriginalID}},
		"name":               {Kind: &qdrant.Value_StringValue{StringValue: p.Name}},
		"description":        {Kind: &qdrant.Value_StringValue{StringValue: p.Description}},
		"created_at":         {Kind: &qdrant.Value_StringValue{StringValue: p.CreatedAt}},
		"updated_at":         {Kind: &qdrant.Value_StringValue{StringValue: p.UpdatedAt}},
	}
}

// payloadFromQdrant extracts the item payload from a Qdrant value map.
func payloadFromQdrant(payload map[string]*qdrant.Value) domain.ItemPayload {
	return domain.ItemPayload{
		OriginalID:  payload[payloadKeyOriginalID].GetIntegerValue(),
		Name:        payload["name"].GetStringValue(),
		Description: payload["description"].GetStringValue(),
		CreatedAt:   payload["created_at"].GetStringValue(),
		UpdatedAt:   payload["updated_at"].GetStringValue(),
	}
}
