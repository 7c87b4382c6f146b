// server/cmd/api/main.go
package main

import (
	"context"
	"os"
	"time"

	"hospital-ops-api-server/config"
	"hospital-ops-api-server/internal/allocation"
	"hospital-ops-api-server/internal/api/routes"
	"hospital-ops-api-server/internal/database"
	"hospital-ops-api-server/internal/inference"
	"hospital-ops-api-server/internal/ledger"
	"hospital-ops-api-server/internal/socket"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .env chỉ dùng cho môi trường phát triển, không có cũng không sao.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	// 2. Kết nối MongoDB
	client, err := database.Connect(cfg.Mongo.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to mongo")
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.Mongo.DBName)

	// 3. Seed dữ liệu mẫu cho môi trường phát triển
	if err := database.SeedDemoData(db, log); err != nil {
		log.Fatal().Err(err).Msg("could not seed demo data")
	}

	// 4. Khởi tạo các store trên MongoDB
	facilityStore := ledger.NewFacilityStore(db)
	stockStore := ledger.NewStockStore(db)
	requestStore := ledger.NewRequestStore(db)
	assessmentStore := ledger.NewAssessmentStore(db)
	predictionStore := ledger.NewPredictionStore(db)

	// 5. Khởi tạo engine điều phối
	inferenceClient := inference.NewClient(inference.Config{
		WebhookURL: cfg.Inference.WebhookURL,
		APIKey:     cfg.Inference.APIKey,
		Timeout:    time.Duration(cfg.Inference.TimeoutSeconds) * time.Second,
	}, log)

	cache := allocation.NewCriticalityCache(assessmentStore, inferenceClient,
		time.Duration(cfg.Allocation.FreshnessMinutes)*time.Minute, log)

	predictions := allocation.NewPredictions(predictionStore)
	ranker := allocation.NewRanker(facilityStore, stockStore, cache, predictions, log)

	wsHub := socket.NewHub(log)
	workflow := allocation.NewWorkflow(requestStore, stockStore, stockStore, facilityStore, wsHub, log)

	// 6. Truyền tất cả các thành phần cần thiết vào router
	router := routes.SetupRouter(ranker, workflow, predictions, facilityStore, wsHub, log)

	// 7. Start server
	log.Info().Str("port", cfg.Server.Port).Msg("starting API server")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
