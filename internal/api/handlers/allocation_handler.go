// server/internal/api/handlers/allocation_handler.go
package handlers

import (
	"net/http"

	"hospital-ops-api-server/internal/allocation"

	"github.com/gin-gonic/gin"
)

type AllocationHandler struct {
	Ranker *allocation.Ranker
}

// GetFacilitiesNeedingHelp trả về danh sách các cơ sở đang cần hỗ trợ, đã xếp
// hạng, nhìn từ góc của cơ sở :facilityId (cơ sở này bị loại khỏi kết quả).
func (h *AllocationHandler) GetFacilitiesNeedingHelp(c *gin.Context) {
	facilityID := c.Param("facilityId")

	needs, err := h.Ranker.RankFacilitiesNeedingHelp(c.Request.Context(), facilityID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, needs)
}
