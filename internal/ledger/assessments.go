// server/internal/ledger/assessments.go
package ledger

import (
	"context"
	"fmt"

	"hospital-ops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssessmentStore lưu collection "criticality_assessments". Chỉ thêm mới,
// không sửa tại chỗ; bản ghi mới nhất là bản ghi có hiệu lực.
type AssessmentStore struct {
	db *mongo.Database
}

func NewAssessmentStore(db *mongo.Database) *AssessmentStore {
	return &AssessmentStore{db: db}
}

func (s *AssessmentStore) collection() *mongo.Collection {
	return s.db.Collection("criticality_assessments")
}

func (s *AssessmentStore) Latest(ctx context.Context, facilityID string) (*models.CriticalityAssessment, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "computedAt", Value: -1}})
	var assessment models.CriticalityAssessment
	err := s.collection().FindOne(ctx, bson.M{"facilityID": facilityID}, opts).Decode(&assessment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest assessment: %w", err)
	}
	return &assessment, nil
}

func (s *AssessmentStore) Insert(ctx context.Context, assessment models.CriticalityAssessment) error {
	if _, err := s.collection().InsertOne(ctx, assessment); err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}
