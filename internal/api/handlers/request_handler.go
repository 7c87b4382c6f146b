// server/internal/api/handlers/request_handler.go
package handlers

import (
	"net/http"

	"hospital-ops-api-server/internal/allocation"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	Workflow *allocation.Workflow
}

// Struct cho request body khi tạo yêu cầu điều phối.
type RequestItemPayload struct {
	ItemName string `json:"itemName" binding:"required"`
	Quantity int64  `json:"quantity"`
	Priority string `json:"priority"`
}

type CreateRequestPayload struct {
	RequestingAdminID string               `json:"requestingAdminId" binding:"required"`
	SourceAdminID     string               `json:"sourceAdminId" binding:"required"`
	Items             []RequestItemPayload `json:"items" binding:"required,dive"`
}

type SetStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// CreateRequest tạo một yêu cầu điều phối hàng giữa hai cơ sở.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var payload CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]allocation.RequestItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, allocation.RequestItemInput{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Priority: item.Priority,
		})
	}

	request, err := h.Workflow.CreateRequest(c.Request.Context(), payload.RequestingAdminID, payload.SourceAdminID, items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// GetRequestsByFacility lấy mọi yêu cầu mà cơ sở đứng ở một trong hai đầu.
func (h *RequestHandler) GetRequestsByFacility(c *gin.Context) {
	facilityID := c.Param("facilityId")

	requests, err := h.Workflow.ListRequests(c.Request.Context(), facilityID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// SetRequestStatus duyệt hoặc từ chối một yêu cầu đang pending. Duyệt sẽ
// thực thi việc chuyển hàng giữa hai cơ sở trước khi trạng thái có hiệu lực.
func (h *RequestHandler) SetRequestStatus(c *gin.Context) {
	requestID := c.Param("requestId")

	var payload SetStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.Workflow.SetStatus(c.Request.Context(), requestID, payload.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}
