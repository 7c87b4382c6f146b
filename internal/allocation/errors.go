// server/internal/allocation/errors.go
package allocation

import "fmt"

// ValidationError báo một trường bắt buộc bị thiếu hoặc không hợp lệ.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError báo không tìm thấy resource theo ID.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// InsufficientStockError báo việc chuyển hàng sẽ làm tồn kho của cơ sở nguồn
// xuống âm. Toàn bộ lần duyệt bị hủy, yêu cầu giữ nguyên trạng thái pending.
type InsufficientStockError struct {
	FacilityID string
	ItemName   string
	Requested  int64
	Available  int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock at %s for %s: requested %d, available %d",
		e.FacilityID, e.ItemName, e.Requested, e.Available)
}

// InvalidTransitionError báo yêu cầu đã ở trạng thái kết thúc và không thể
// chuyển trạng thái thêm lần nữa.
type InvalidTransitionError struct {
	RequestID string
	From      string
	To        string
}

func (e *InvalidTransitionError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("request %s is no longer pending, cannot set status to %s", e.RequestID, e.To)
	}
	return fmt.Sprintf("request %s is already %s, cannot set status to %s", e.RequestID, e.From, e.To)
}
