// server/internal/api/routes/routes.go
package routes

import (
	"net/http"

	"hospital-ops-api-server/internal/allocation"
	"hospital-ops-api-server/internal/api/handlers"
	"hospital-ops-api-server/internal/api/middleware"
	"hospital-ops-api-server/internal/ledger"
	"hospital-ops-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route.
func SetupRouter(
	ranker *allocation.Ranker,
	workflow *allocation.Workflow,
	predictions *allocation.Predictions,
	facilities *ledger.FacilityStore,
	wsHub *socket.Hub,
	log zerolog.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	// Khởi tạo các handlers
	allocationHandler := &handlers.AllocationHandler{Ranker: ranker}
	requestHandler := &handlers.RequestHandler{Workflow: workflow}
	predictionHandler := &handlers.PredictionHandler{Predictions: predictions, Facilities: facilities}
	facilityHandler := &handlers.FacilityHandler{Facilities: facilities}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Log: log}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// Route cho WebSocket
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// Xếp hạng các cơ sở đang cần hỗ trợ, loại trừ cơ sở của người gọi
		apiV1.GET("/admins-low-stock/:facilityId", allocationHandler.GetFacilitiesNeedingHelp)

		// Yêu cầu điều phối hàng giữa hai cơ sở
		apiV1.POST("/request", requestHandler.CreateRequest)
		apiV1.GET("/requests/:facilityId", requestHandler.GetRequestsByFacility)
		apiV1.PUT("/request/:requestId/status", requestHandler.SetRequestStatus)

		// Dự báo nhu cầu
		apiV1.POST("/predicted-needs", predictionHandler.RecordPrediction)
		apiV1.GET("/predicted-needs/:facilityId", predictionHandler.GetPredictionsByFacility)
		apiV1.PUT("/predicted-needs/:id/status", predictionHandler.SetPredictionStatus)

		// Danh bạ cơ sở
		facilitiesGroup := apiV1.Group("/facilities")
		{
			facilitiesGroup.POST("/", facilityHandler.CreateFacility)
			facilitiesGroup.GET("/", facilityHandler.GetAllFacilities)
			facilitiesGroup.GET("/:id", facilityHandler.GetFacilityByID)
		}
	}

	return router
}
