// server/internal/ledger/facilities.go
package ledger

import (
	"context"
	"fmt"
	"time"

	"hospital-ops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FacilityStore là danh bạ cơ sở, dùng cho join hiển thị (tên, thành phố, email).
type FacilityStore struct {
	db *mongo.Database
}

func NewFacilityStore(db *mongo.Database) *FacilityStore {
	return &FacilityStore{db: db}
}

func (s *FacilityStore) collection() *mongo.Collection {
	return s.db.Collection("facilities")
}

func (s *FacilityStore) Exists(ctx context.Context, facilityID string) (bool, error) {
	count, err := s.collection().CountDocuments(ctx, bson.M{"facilityID": facilityID})
	if err != nil {
		return false, fmt.Errorf("count facilities: %w", err)
	}
	return count > 0, nil
}

func (s *FacilityStore) Insert(ctx context.Context, facility models.Facility) (models.Facility, error) {
	facility.CreatedAt = time.Now()
	facility.UpdatedAt = facility.CreatedAt

	result, err := s.collection().InsertOne(ctx, facility)
	if err != nil {
		return models.Facility{}, fmt.Errorf("insert facility: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		facility.ID = oid
	}
	return facility, nil
}

// Facility trả về nil nếu không có cơ sở mang facilityID này.
func (s *FacilityStore) Facility(ctx context.Context, facilityID string) (*models.Facility, error) {
	var facility models.Facility
	err := s.collection().FindOne(ctx, bson.M{"facilityID": facilityID}).Decode(&facility)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("query facility: %w", err)
	}
	return &facility, nil
}

func (s *FacilityStore) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	cursor, err := s.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("query facilities: %w", err)
	}
	defer cursor.Close(ctx)

	var facilities []models.Facility
	if err = cursor.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("decode facilities: %w", err)
	}
	if facilities == nil {
		facilities = []models.Facility{}
	}
	return facilities, nil
}
