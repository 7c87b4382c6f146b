// server/internal/api/handlers/facility_handler.go
package handlers

import (
	"net/http"

	"hospital-ops-api-server/internal/ledger"
	"hospital-ops-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type FacilityHandler struct {
	Facilities *ledger.FacilityStore
}

type CreateFacilityRequest struct {
	FacilityID string `json:"facilityID" binding:"required"`
	Name       string `json:"name" binding:"required"`
	City       string `json:"city" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
}

// CreateFacility tạo một cơ sở mới trong danh bạ.
func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	var req CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Kiểm tra xem facilityID đã tồn tại chưa
	exists, err := h.Facilities.Exists(c.Request.Context(), req.FacilityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for facility"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Facility with this ID already exists"})
		return
	}

	facility, err := h.Facilities.Insert(c.Request.Context(), models.Facility{
		FacilityID: req.FacilityID,
		Name:       req.Name,
		City:       req.City,
		Email:      req.Email,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create facility"})
		return
	}

	c.JSON(http.StatusCreated, facility)
}

// GetAllFacilities lấy danh sách tất cả các cơ sở.
func (h *FacilityHandler) GetAllFacilities(c *gin.Context) {
	facilities, err := h.Facilities.ListFacilities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query facilities"})
		return
	}

	c.JSON(http.StatusOK, facilities)
}

// GetFacilityByID lấy thông tin cơ sở theo facilityID.
func (h *FacilityHandler) GetFacilityByID(c *gin.Context) {
	facilityID := c.Param("id")

	facility, err := h.Facilities.Facility(c.Request.Context(), facilityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve facility"})
		return
	}
	if facility == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}

	c.JSON(http.StatusOK, facility)
}
