// server/internal/api/handlers/prediction_handler.go
package handlers

import (
	"net/http"
	"time"

	"hospital-ops-api-server/internal/allocation"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	Predictions *allocation.Predictions
	Facilities  allocation.FacilityGetter
}

// Struct cho request body khi ghi một dự báo nhu cầu.
type RecordPredictionPayload struct {
	AdminID           string    `json:"adminId" binding:"required"`
	ItemName          string    `json:"itemName" binding:"required"`
	PredictedQuantity int64     `json:"predictedQuantity"`
	PredictedDate     time.Time `json:"predictedDate" binding:"required"`
	Priority          string    `json:"priority" binding:"required"`
}

// RecordPrediction ghi một dự báo nhu cầu cho một cơ sở.
func (h *PredictionHandler) RecordPrediction(c *gin.Context) {
	var payload RecordPredictionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.Predictions.RecordPrediction(c.Request.Context(),
		payload.AdminID, payload.ItemName, payload.PredictedQuantity, payload.PredictedDate, payload.Priority)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prediction)
}

// GetPredictionsByFacility trả về dự báo của một cơ sở kèm thông tin cơ sở
// để hiển thị, sắp theo predictedDate tăng dần.
func (h *PredictionHandler) GetPredictionsByFacility(c *gin.Context) {
	facilityID := c.Param("facilityId")

	facility, err := h.Facilities.Facility(c.Request.Context(), facilityID)
	if err != nil {
		respondError(c, err)
		return
	}
	if facility == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}

	predictions, err := h.Predictions.ListPredictions(c.Request.Context(), facilityID, true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"facility":    facility,
		"predictions": predictions,
	})
}

// SetPredictionStatus đánh dấu một dự báo là completed hoặc cancelled.
func (h *PredictionHandler) SetPredictionStatus(c *gin.Context) {
	predictionID := c.Param("id")

	var payload SetStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Predictions.SetStatus(c.Request.Context(), predictionID, payload.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "predictionID": predictionID})
}
