// server/internal/allocation/predictions.go
package allocation

import (
	"context"
	"fmt"
	"time"

	"hospital-ops-api-server/internal/models"

	"github.com/google/uuid"
)

// PredictionStore lưu các dự báo nhu cầu.
type PredictionStore interface {
	Insert(ctx context.Context, prediction models.PredictedNeed) error
	// List trả về dự báo của cơ sở theo predictedDate tăng dần; khi
	// excludeCompleted=true chỉ trả về các dự báo còn pending.
	List(ctx context.Context, facilityID string, excludeCompleted bool) ([]models.PredictedNeed, error)
	// UpdateStatusIfPending trả về false nếu dự báo không tồn tại hoặc đã
	// ở trạng thái kết thúc.
	UpdateStatusIfPending(ctx context.Context, predictionID, newStatus string) (bool, error)
	// FindByID trả về nil nếu không có dự báo nào mang predictionID này.
	FindByID(ctx context.Context, predictionID string) (*models.PredictedNeed, error)
}

// Predictions quản lý các dự báo nhu cầu do hệ thống dự báo bên ngoài ghi vào.
// Ranker đọc chúng như một tín hiệu "cần hỗ trợ" độc lập với tồn kho hiện tại.
type Predictions struct {
	store PredictionStore
	now   func() time.Time
}

func NewPredictions(store PredictionStore) *Predictions {
	return &Predictions{store: store, now: time.Now}
}

// RecordPrediction ghi một dự báo mới. predictedDate phải ở tương lai.
func (p *Predictions) RecordPrediction(ctx context.Context, facilityID, itemName string, quantity int64, predictedDate time.Time, priority string) (models.PredictedNeed, error) {
	if facilityID == "" {
		return models.PredictedNeed{}, &ValidationError{Field: "adminId", Message: "is required"}
	}
	if itemName == "" {
		return models.PredictedNeed{}, &ValidationError{Field: "itemName", Message: "is required"}
	}
	if quantity <= 0 {
		return models.PredictedNeed{}, &ValidationError{Field: "predictedQuantity", Message: "must be greater than zero"}
	}
	if !predictedDate.After(p.now()) {
		return models.PredictedNeed{}, &ValidationError{Field: "predictedDate", Message: "must be in the future"}
	}
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return models.PredictedNeed{}, &ValidationError{Field: "priority", Message: `must be "high", "medium" or "low"`}
	}

	prediction := models.PredictedNeed{
		PredictionID:      fmt.Sprintf("PRED-%s", uuid.New().String()[:8]),
		FacilityID:        facilityID,
		ItemName:          itemName,
		PredictedQuantity: quantity,
		PredictedDate:     predictedDate,
		Priority:          priority,
		Status:            PredictionPending,
		CreatedAt:         p.now(),
	}
	if err := p.store.Insert(ctx, prediction); err != nil {
		return models.PredictedNeed{}, err
	}
	return prediction, nil
}

// ListPredictions implements PredictionLister.
func (p *Predictions) ListPredictions(ctx context.Context, facilityID string, excludeCompleted bool) ([]models.PredictedNeed, error) {
	if facilityID == "" {
		return nil, &ValidationError{Field: "facilityId", Message: "is required"}
	}
	return p.store.List(ctx, facilityID, excludeCompleted)
}

// SetStatus đánh dấu một dự báo là completed hoặc cancelled. Dự báo quá hạn
// không tự hết hiệu lực; đây là đường duy nhất đưa nó ra khỏi danh sách.
func (p *Predictions) SetStatus(ctx context.Context, predictionID, newStatus string) error {
	if newStatus != PredictionCompleted && newStatus != PredictionCancelled {
		return &ValidationError{Field: "status", Message: `must be "completed" or "cancelled"`}
	}
	prediction, err := p.store.FindByID(ctx, predictionID)
	if err != nil {
		return err
	}
	if prediction == nil {
		return &NotFoundError{Resource: "prediction", ID: predictionID}
	}
	updated, err := p.store.UpdateStatusIfPending(ctx, predictionID, newStatus)
	if err != nil {
		return err
	}
	if !updated {
		return &InvalidTransitionError{RequestID: predictionID, From: prediction.Status, To: newStatus}
	}
	return nil
}
