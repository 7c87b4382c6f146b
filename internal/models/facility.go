// server/internal/models/facility.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Facility struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FacilityID string             `bson:"facilityID" json:"facilityID"` // User-friendly unique ID, e.g., "hosp-A"
	Name       string             `bson:"name" json:"name"`             // e.g., "Bệnh viện Đa khoa A"
	City       string             `bson:"city" json:"city"`
	Email      string             `bson:"email" json:"email"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
