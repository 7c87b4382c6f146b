// server/internal/ledger/predictions.go
package ledger

import (
	"context"
	"fmt"

	"hospital-ops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PredictionStore lưu collection "predicted_needs".
type PredictionStore struct {
	db *mongo.Database
}

func NewPredictionStore(db *mongo.Database) *PredictionStore {
	return &PredictionStore{db: db}
}

func (s *PredictionStore) collection() *mongo.Collection {
	return s.db.Collection("predicted_needs")
}

func (s *PredictionStore) Insert(ctx context.Context, prediction models.PredictedNeed) error {
	if _, err := s.collection().InsertOne(ctx, prediction); err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

// List trả về dự báo theo predictedDate tăng dần. Khi excludeCompleted=true
// chỉ lấy các dự báo còn pending; dự báo quá hạn vẫn nằm trong kết quả.
func (s *PredictionStore) List(ctx context.Context, facilityID string, excludeCompleted bool) ([]models.PredictedNeed, error) {
	filter := bson.M{"facilityID": facilityID}
	if excludeCompleted {
		filter["status"] = "pending"
	}
	opts := options.Find().SetSort(bson.D{{Key: "predictedDate", Value: 1}})

	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer cursor.Close(ctx)

	var predictions []models.PredictedNeed
	if err = cursor.All(ctx, &predictions); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}
	if predictions == nil {
		predictions = []models.PredictedNeed{}
	}
	return predictions, nil
}

func (s *PredictionStore) FindByID(ctx context.Context, predictionID string) (*models.PredictedNeed, error) {
	var prediction models.PredictedNeed
	err := s.collection().FindOne(ctx, bson.M{"predictionID": predictionID}).Decode(&prediction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("query prediction: %w", err)
	}
	return &prediction, nil
}

func (s *PredictionStore) UpdateStatusIfPending(ctx context.Context, predictionID, newStatus string) (bool, error) {
	res, err := s.collection().UpdateOne(ctx,
		bson.M{"predictionID": predictionID, "status": "pending"},
		bson.M{"$set": bson.M{"status": newStatus}},
	)
	if err != nil {
		return false, fmt.Errorf("update prediction status: %w", err)
	}
	return res.MatchedCount > 0, nil
}
