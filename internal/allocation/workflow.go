// server/internal/allocation/workflow.go
package allocation

import (
	"context"
	"fmt"
	"time"

	"hospital-ops-api-server/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestStore lưu các yêu cầu điều phối.
type RequestStore interface {
	Insert(ctx context.Context, request models.DistributionRequest) error
	// FindByID trả về nil nếu không có yêu cầu nào mang requestID này.
	FindByID(ctx context.Context, requestID string) (*models.DistributionRequest, error)
	// ListForFacility trả về mọi yêu cầu mà cơ sở đứng ở một trong hai đầu,
	// mới nhất trước.
	ListForFacility(ctx context.Context, facilityID string) ([]models.DistributionRequest, error)
	// UpdateStatusIfPending chỉ cập nhật khi yêu cầu vẫn đang pending;
	// trả về false nếu đã có ai đó chuyển trạng thái trước.
	UpdateStatusIfPending(ctx context.Context, requestID, newStatus string) (bool, error)
}

// TransferExecutor thực thi một lần duyệt: chuyển trạng thái pending->approved
// và áp các delta số lượng lên kho của cả hai cơ sở trong cùng một transaction.
// Bất kỳ dòng nào thiếu hàng làm cả lần duyệt thất bại, yêu cầu giữ pending.
type TransferExecutor interface {
	ExecuteApproval(ctx context.Context, request models.DistributionRequest) error
}

// StockSnapshotter đọc một dòng tồn kho để chụp snapshot lúc tạo yêu cầu.
type StockSnapshotter interface {
	// Line trả về nil nếu cơ sở không có dòng tồn kho cho mặt hàng này.
	Line(ctx context.Context, facilityID, itemName string) (*models.StockLine, error)
}

// FacilityGetter tra cứu danh bạ cơ sở.
type FacilityGetter interface {
	// Facility trả về nil nếu không có cơ sở mang facilityID này.
	Facility(ctx context.Context, facilityID string) (*models.Facility, error)
}

// Notifier đẩy sự kiện realtime đến một cơ sở. Cơ sở offline không phải lỗi.
type Notifier interface {
	Notify(facilityID string, event interface{})
}

// RequestItemInput là một dòng hàng do người gọi gửi lên khi tạo yêu cầu.
type RequestItemInput struct {
	ItemName string
	Quantity int64
	Priority string
}

// Workflow là state machine của các yêu cầu điều phối:
// tạo (pending) -> duyệt (approved, kèm chuyển hàng) hoặc từ chối (rejected).
type Workflow struct {
	requests   RequestStore
	stock      StockSnapshotter
	transfers  TransferExecutor
	facilities FacilityGetter
	notifier   Notifier
	log        zerolog.Logger
	now        func() time.Time
}

func NewWorkflow(requests RequestStore, stock StockSnapshotter, transfers TransferExecutor, facilities FacilityGetter, notifier Notifier, log zerolog.Logger) *Workflow {
	return &Workflow{
		requests:   requests,
		stock:      stock,
		transfers:  transfers,
		facilities: facilities,
		notifier:   notifier,
		log:        log.With().Str("component", "request_workflow").Logger(),
		now:        time.Now,
	}
}

// CreateRequest tạo một yêu cầu điều phối mới ở trạng thái pending, chụp kèm
// snapshot tồn kho của cơ sở nguồn cho từng dòng hàng.
func (w *Workflow) CreateRequest(ctx context.Context, requestingFacilityID, sourceFacilityID string, items []RequestItemInput) (models.DistributionRequest, error) {
	if requestingFacilityID == "" {
		return models.DistributionRequest{}, &ValidationError{Field: "requestingAdminId", Message: "is required"}
	}
	if sourceFacilityID == "" {
		return models.DistributionRequest{}, &ValidationError{Field: "sourceAdminId", Message: "is required"}
	}
	if requestingFacilityID == sourceFacilityID {
		return models.DistributionRequest{}, &ValidationError{Field: "sourceAdminId", Message: "must differ from requestingAdminId"}
	}
	if len(items) == 0 {
		return models.DistributionRequest{}, &ValidationError{Field: "items", Message: "must not be empty"}
	}
	for i, item := range items {
		if item.ItemName == "" {
			return models.DistributionRequest{}, &ValidationError{Field: fmt.Sprintf("items[%d].itemName", i), Message: "is required"}
		}
		if item.Quantity <= 0 {
			return models.DistributionRequest{}, &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be greater than zero"}
		}
	}

	requesting, err := w.facilities.Facility(ctx, requestingFacilityID)
	if err != nil {
		return models.DistributionRequest{}, err
	}
	if requesting == nil {
		return models.DistributionRequest{}, &NotFoundError{Resource: "facility", ID: requestingFacilityID}
	}
	source, err := w.facilities.Facility(ctx, sourceFacilityID)
	if err != nil {
		return models.DistributionRequest{}, err
	}
	if source == nil {
		return models.DistributionRequest{}, &NotFoundError{Resource: "facility", ID: sourceFacilityID}
	}

	requestItems := make([]models.RequestItem, 0, len(items))
	for _, item := range items {
		requestItem := models.RequestItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Priority: item.Priority,
		}
		line, err := w.stock.Line(ctx, sourceFacilityID, item.ItemName)
		if err != nil {
			return models.DistributionRequest{}, err
		}
		if line != nil {
			quantity, reorderLevel := line.Quantity, line.ReorderLevel
			requestItem.SnapshotStock = &quantity
			requestItem.SnapshotReorderLevel = &reorderLevel
		}
		requestItems = append(requestItems, requestItem)
	}

	request := models.DistributionRequest{
		RequestID:            fmt.Sprintf("TREQ-%s", uuid.New().String()[:8]),
		RequestingFacilityID: requestingFacilityID,
		SourceFacilityID:     sourceFacilityID,
		Items:                requestItems,
		Status:               StatusPending,
		CreatedAt:            w.now(),
	}
	if err := w.requests.Insert(ctx, request); err != nil {
		return models.DistributionRequest{}, err
	}

	request.RequestingFacilityName = requesting.Name
	request.SourceFacilityName = source.Name

	w.log.Info().Str("requestID", request.RequestID).
		Str("requestingFacilityID", requestingFacilityID).
		Str("sourceFacilityID", sourceFacilityID).
		Int("items", len(requestItems)).
		Msg("distribution request created")

	w.notify(sourceFacilityID, "request_created", request)
	return request, nil
}

// ListRequests trả về mọi yêu cầu mà cơ sở là bên yêu cầu hoặc bên nguồn,
// mới nhất trước.
func (w *Workflow) ListRequests(ctx context.Context, facilityID string) ([]models.DistributionRequest, error) {
	if facilityID == "" {
		return nil, &ValidationError{Field: "facilityId", Message: "is required"}
	}
	return w.requests.ListForFacility(ctx, facilityID)
}

// SetStatus chuyển trạng thái một yêu cầu. Chỉ chấp nhận
// pending->approved và pending->rejected; trạng thái kết thúc là vĩnh viễn.
// Duyệt chạy TransferExecutor; chuyển hàng thất bại thì yêu cầu giữ pending.
func (w *Workflow) SetStatus(ctx context.Context, requestID, newStatus string) (models.DistributionRequest, error) {
	if newStatus != StatusApproved && newStatus != StatusRejected {
		return models.DistributionRequest{}, &ValidationError{Field: "status", Message: `must be "approved" or "rejected"`}
	}

	request, err := w.requests.FindByID(ctx, requestID)
	if err != nil {
		return models.DistributionRequest{}, err
	}
	if request == nil {
		return models.DistributionRequest{}, &NotFoundError{Resource: "request", ID: requestID}
	}
	if request.Status != StatusPending {
		return models.DistributionRequest{}, &InvalidTransitionError{RequestID: requestID, From: request.Status, To: newStatus}
	}

	if newStatus == StatusApproved {
		// Đổi trạng thái và chuyển hàng trong cùng một transaction; hai lần
		// duyệt đồng thời thì chỉ một lần thắng.
		if err := w.transfers.ExecuteApproval(ctx, *request); err != nil {
			return models.DistributionRequest{}, err
		}
	} else {
		updated, err := w.requests.UpdateStatusIfPending(ctx, requestID, StatusRejected)
		if err != nil {
			return models.DistributionRequest{}, err
		}
		if !updated {
			return models.DistributionRequest{}, &InvalidTransitionError{RequestID: requestID, To: newStatus}
		}
	}

	request.Status = newStatus
	w.log.Info().Str("requestID", requestID).Str("status", newStatus).Msg("distribution request resolved")
	w.notify(request.RequestingFacilityID, "request_"+newStatus, *request)
	return *request, nil
}

func (w *Workflow) notify(facilityID, event string, request models.DistributionRequest) {
	if w.notifier == nil {
		return
	}
	w.notifier.Notify(facilityID, map[string]interface{}{
		"event":   event,
		"request": request,
	})
}
