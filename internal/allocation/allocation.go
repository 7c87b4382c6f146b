// Package allocation chứa lõi của engine điều phối tồn kho liên cơ sở:
// phân loại mức ưu tiên, cache đánh giá khẩn cấp, xếp hạng cơ sở cần hỗ trợ,
// workflow yêu cầu điều phối và kho dự báo nhu cầu.
package allocation

// Trạng thái của DistributionRequest. Mỗi yêu cầu chuyển trạng thái đúng một
// lần: pending -> approved hoặc pending -> rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Trạng thái của PredictedNeed.
const (
	PredictionPending   = "pending"
	PredictionCompleted = "completed"
	PredictionCancelled = "cancelled"
)

// Mức ưu tiên dùng chung cho tier phân loại và priority của dự báo.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)
