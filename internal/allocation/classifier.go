// server/internal/allocation/classifier.go
package allocation

import "hospital-ops-api-server/internal/models"

// Classify phân loại một dòng tồn kho theo tỉ lệ quantity / reorderLevel:
//   - ratio == 0            -> high
//   - 0 < ratio <= 0.5      -> medium
//   - còn lại               -> low
//
// reorderLevel == 0 làm tỉ lệ không xác định; các dòng như vậy được coi là high
// thay vì chia cho 0.
func Classify(line models.StockLine) string {
	if line.ReorderLevel <= 0 {
		return PriorityHigh
	}
	ratio := float64(line.Quantity) / float64(line.ReorderLevel)
	switch {
	case ratio == 0:
		return PriorityHigh
	case ratio <= 0.5:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// TierRank đổi tier thành hạng số: high=1, medium=2, low=3. Số nhỏ hơn là
// khẩn cấp hơn.
func TierRank(tier string) int {
	switch tier {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}
