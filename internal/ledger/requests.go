// server/internal/ledger/requests.go
package ledger

import (
	"context"
	"fmt"

	"hospital-ops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RequestStore lưu collection "distribution_requests".
type RequestStore struct {
	db *mongo.Database
}

func NewRequestStore(db *mongo.Database) *RequestStore {
	return &RequestStore{db: db}
}

func (s *RequestStore) collection() *mongo.Collection {
	return s.db.Collection("distribution_requests")
}

func (s *RequestStore) Insert(ctx context.Context, request models.DistributionRequest) error {
	if _, err := s.collection().InsertOne(ctx, request); err != nil {
		return fmt.Errorf("insert distribution request: %w", err)
	}
	return nil
}

func (s *RequestStore) FindByID(ctx context.Context, requestID string) (*models.DistributionRequest, error) {
	var request models.DistributionRequest
	err := s.collection().FindOne(ctx, bson.M{"requestID": requestID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("query distribution request: %w", err)
	}
	return &request, nil
}

// ListForFacility trả về mọi yêu cầu mà cơ sở đứng ở đầu yêu cầu hoặc đầu
// nguồn, mới nhất trước.
func (s *RequestStore) ListForFacility(ctx context.Context, facilityID string) ([]models.DistributionRequest, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"requestingFacilityID": facilityID},
		bson.M{"sourceFacilityID": facilityID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query distribution requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.DistributionRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode distribution requests: %w", err)
	}
	if requests == nil {
		requests = []models.DistributionRequest{}
	}
	return requests, nil
}

// UpdateStatusIfPending chỉ cập nhật khi yêu cầu vẫn pending ("ai nhanh hơn").
func (s *RequestStore) UpdateStatusIfPending(ctx context.Context, requestID, newStatus string) (bool, error) {
	res, err := s.collection().UpdateOne(ctx,
		bson.M{"requestID": requestID, "status": "pending"},
		bson.M{"$set": bson.M{"status": newStatus}},
	)
	if err != nil {
		return false, fmt.Errorf("update request status: %w", err)
	}
	return res.MatchedCount > 0, nil
}
