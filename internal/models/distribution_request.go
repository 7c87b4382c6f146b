// server/internal/models/distribution_request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestItem là một dòng hàng trong yêu cầu điều phối. Snapshot* là ảnh chụp
// tồn kho của cơ sở nguồn tại thời điểm tạo yêu cầu; thay đổi kho sau đó
// không làm thay đổi yêu cầu đang chờ.
type RequestItem struct {
	ItemName             string `bson:"itemName" json:"itemName"`
	Quantity             int64  `bson:"quantity" json:"quantity"`
	Priority             string `bson:"priority" json:"priority"`
	SnapshotStock        *int64 `bson:"snapshotStock,omitempty" json:"snapshotStock,omitempty"`
	SnapshotReorderLevel *int64 `bson:"snapshotReorderLevel,omitempty" json:"snapshotReorderLevel,omitempty"`
}

type DistributionRequest struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID            string             `bson:"requestID" json:"requestID"`
	RequestingFacilityID string             `bson:"requestingFacilityID" json:"requestingFacilityID"`
	SourceFacilityID     string             `bson:"sourceFacilityID" json:"sourceFacilityID"`
	Items                []RequestItem      `bson:"items" json:"items"`
	Status               string             `bson:"status" json:"status"` // "pending", "approved", "rejected"
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`

	// Tên cơ sở để hiển thị, join từ collection "facilities" khi trả về.
	RequestingFacilityName string `bson:"-" json:"requestingFacilityName,omitempty"`
	SourceFacilityName     string `bson:"-" json:"sourceFacilityName,omitempty"`
}
