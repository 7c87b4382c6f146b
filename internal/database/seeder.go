// server/internal/database/seeder.go
package database

import (
	"context"
	"time"

	"hospital-ops-api-server/internal/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedDemoData tạo dữ liệu mẫu (cơ sở + tồn kho) cho môi trường phát triển.
// Chỉ chạy khi collection "facilities" còn trống.
func SeedDemoData(db *mongo.Database, log zerolog.Logger) error {
	facilityCollection := db.Collection("facilities")

	// Kiểm tra xem đã có dữ liệu chưa
	count, err := facilityCollection.CountDocuments(context.Background(), bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("facilities already exist, seeding skipped")
		return nil
	}

	log.Info().Msg("no facilities found, seeding demo data")
	now := time.Now()

	facilities := []interface{}{
		models.Facility{FacilityID: "hosp-A", Name: "Bệnh viện Đa khoa A", City: "Hà Nội", Email: "admin@hosp-a.example.com", CreatedAt: now, UpdatedAt: now},
		models.Facility{FacilityID: "hosp-B", Name: "Bệnh viện Đa khoa B", City: "Đà Nẵng", Email: "admin@hosp-b.example.com", CreatedAt: now, UpdatedAt: now},
		models.Facility{FacilityID: "hosp-C", Name: "Phòng khám C", City: "Hồ Chí Minh", Email: "admin@hosp-c.example.com", CreatedAt: now, UpdatedAt: now},
	}
	if _, err := facilityCollection.InsertMany(context.Background(), facilities); err != nil {
		return err
	}

	stockLines := []interface{}{
		models.StockLine{FacilityID: "hosp-A", ItemName: "Paracetamol", Quantity: 0, ReorderLevel: 20, Unit: "viên", Category: "medicine", UpdatedAt: now},
		models.StockLine{FacilityID: "hosp-A", ItemName: "Gạc vô trùng", Quantity: 8, ReorderLevel: 30, Unit: "gói", Category: "supplies", UpdatedAt: now},
		models.StockLine{FacilityID: "hosp-B", ItemName: "Paracetamol", Quantity: 12, ReorderLevel: 15, Unit: "viên", Category: "medicine", UpdatedAt: now},
		models.StockLine{FacilityID: "hosp-C", ItemName: "Paracetamol", Quantity: 50, ReorderLevel: 10, Unit: "viên", Category: "medicine", UpdatedAt: now},
		models.StockLine{FacilityID: "hosp-C", ItemName: "Oxy già", Quantity: 40, ReorderLevel: 10, Unit: "chai", Category: "supplies", UpdatedAt: now},
	}
	if _, err := db.Collection("stock_lines").InsertMany(context.Background(), stockLines); err != nil {
		return err
	}

	log.Info().Msg("demo data seeded successfully")
	return nil
}
