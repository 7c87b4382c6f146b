// server/internal/ledger/stock.go
package ledger

import (
	"context"
	"fmt"
	"time"

	"hospital-ops-api-server/internal/allocation"
	"hospital-ops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StockStore đọc và sửa collection "stock_lines". Đây là Stock Ledger của
// engine; CRUD thông thường của ứng dụng quản trị cũng ghi vào collection này.
type StockStore struct {
	db *mongo.Database
}

func NewStockStore(db *mongo.Database) *StockStore {
	return &StockStore{db: db}
}

func (s *StockStore) collection() *mongo.Collection {
	return s.db.Collection("stock_lines")
}

// LowStockLines trả về các dòng có quantity <= reorderLevel của một cơ sở.
func (s *StockStore) LowStockLines(ctx context.Context, facilityID string) ([]models.StockLine, error) {
	filter := bson.M{
		"facilityID": facilityID,
		"$expr":      bson.M{"$lte": bson.A{"$quantity", "$reorderLevel"}},
	}
	cursor, err := s.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query low stock lines: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []models.StockLine
	if err = cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("decode low stock lines: %w", err)
	}
	if lines == nil {
		lines = []models.StockLine{}
	}
	return lines, nil
}

// Line trả về một dòng tồn kho theo khóa (facilityID, itemName), nil nếu không có.
func (s *StockStore) Line(ctx context.Context, facilityID, itemName string) (*models.StockLine, error) {
	var line models.StockLine
	err := s.collection().FindOne(ctx, bson.M{"facilityID": facilityID, "itemName": itemName}).Decode(&line)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("query stock line: %w", err)
	}
	return &line, nil
}

// ExecuteApproval implements allocation.TransferExecutor.
//
// Toàn bộ lần duyệt chạy trong một transaction MongoDB: đổi trạng thái yêu cầu
// pending->approved, rồi với từng dòng hàng trừ kho cơ sở nguồn và cộng kho cơ
// sở yêu cầu. Phép trừ có điều kiện quantity >= số cần chuyển nên không bao giờ
// đưa tồn kho xuống âm; dòng nào thiếu hàng thì cả transaction bị hủy và yêu
// cầu giữ nguyên pending. Hai lần duyệt đồng thời chỉ một lần khớp được filter
// trạng thái pending.
func (s *StockStore) ExecuteApproval(ctx context.Context, request models.DistributionRequest) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		requests := s.db.Collection("distribution_requests")
		res, err := requests.UpdateOne(sessCtx,
			bson.M{"requestID": request.RequestID, "status": allocation.StatusPending},
			bson.M{"$set": bson.M{"status": allocation.StatusApproved}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, &allocation.InvalidTransitionError{RequestID: request.RequestID, To: allocation.StatusApproved}
		}

		stock := s.collection()
		now := time.Now()
		for _, item := range request.Items {
			// Chỉ trừ khi cơ sở nguồn còn đủ hàng.
			var source models.StockLine
			err := stock.FindOneAndUpdate(sessCtx,
				bson.M{
					"facilityID": request.SourceFacilityID,
					"itemName":   item.ItemName,
					"quantity":   bson.M{"$gte": item.Quantity},
				},
				bson.M{
					"$inc": bson.M{"quantity": -item.Quantity},
					"$set": bson.M{"updatedAt": now},
				},
			).Decode(&source)
			if err != nil {
				if err == mongo.ErrNoDocuments {
					available := int64(0)
					var existing models.StockLine
					if lookupErr := stock.FindOne(sessCtx, bson.M{
						"facilityID": request.SourceFacilityID,
						"itemName":   item.ItemName,
					}).Decode(&existing); lookupErr == nil {
						available = existing.Quantity
					}
					return nil, &allocation.InsufficientStockError{
						FacilityID: request.SourceFacilityID,
						ItemName:   item.ItemName,
						Requested:  item.Quantity,
						Available:  available,
					}
				}
				return nil, err
			}

			// Cộng kho bên nhận, tạo dòng mới nếu cơ sở chưa có mặt hàng này.
			_, err = stock.UpdateOne(sessCtx,
				bson.M{"facilityID": request.RequestingFacilityID, "itemName": item.ItemName},
				bson.M{
					"$inc": bson.M{"quantity": item.Quantity},
					"$set": bson.M{"updatedAt": now},
					"$setOnInsert": bson.M{
						"unit":         source.Unit,
						"category":     source.Category,
						"reorderLevel": int64(0),
					},
				},
				options.Update().SetUpsert(true),
			)
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	_, err = session.WithTransaction(ctx, callback)
	return err
}
