// server/internal/models/predicted_need.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PredictedNeed là dự báo nhu cầu trong tương lai của một cơ sở, do hệ thống
// dự báo bên ngoài ghi vào. Dự báo quá hạn vẫn hiển thị cho đến khi được
// đánh dấu completed/cancelled.
type PredictedNeed struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PredictionID      string             `bson:"predictionID" json:"predictionID"`
	FacilityID        string             `bson:"facilityID" json:"facilityID"`
	ItemName          string             `bson:"itemName" json:"itemName"`
	PredictedQuantity int64              `bson:"predictedQuantity" json:"predictedQuantity"`
	PredictedDate     time.Time          `bson:"predictedDate" json:"predictedDate"`
	Priority          string             `bson:"priority" json:"priority"` // "high", "medium", "low"
	Status            string             `bson:"status" json:"status"`     // "pending", "completed", "cancelled"
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
