// server/internal/models/stock_line.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockLine là một dòng tồn kho của một cơ sở.
// Cặp (facilityID, itemName) là khóa tự nhiên của collection "stock_lines".
type StockLine struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FacilityID   string             `bson:"facilityID" json:"facilityID"`
	ItemName     string             `bson:"itemName" json:"itemName"`
	Quantity     int64              `bson:"quantity" json:"quantity"`         // không bao giờ âm
	ReorderLevel int64              `bson:"reorderLevel" json:"reorderLevel"`
	Unit         string             `bson:"unit" json:"unit"` // e.g., "viên", "hộp", "chai"
	Category     string             `bson:"category" json:"category"`
	ExpiryDate   *time.Time         `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
