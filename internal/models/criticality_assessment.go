// server/internal/models/criticality_assessment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CriticalityAssessment là kết quả đánh giá mức độ khẩn cấp của một cơ sở,
// do dịch vụ suy luận bên ngoài tính (hoặc fallback). Mỗi lần tính lại sẽ
// tạo một bản ghi mới, không sửa bản ghi cũ.
type CriticalityAssessment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FacilityID     string             `bson:"facilityID" json:"facilityID"`
	ItemScores     map[string]float64 `bson:"itemScores" json:"itemScores"` // điểm 0-10 theo từng mặt hàng
	OverallScore   float64            `bson:"overallScore" json:"overallScore"`
	Recommendation string             `bson:"recommendation" json:"recommendation"`
	ComputedAt     time.Time          `bson:"computedAt" json:"computedAt"`
}
