// server/internal/allocation/cache.go
package allocation

import (
	"context"
	"time"

	"hospital-ops-api-server/internal/models"

	"github.com/rs/zerolog"
)

// AssessmentStore lưu các bản đánh giá khẩn cấp. Bản ghi chỉ được thêm mới,
// không sửa tại chỗ; "mới nhất thắng".
type AssessmentStore interface {
	// Latest trả về bản đánh giá mới nhất của cơ sở, nil nếu chưa có.
	Latest(ctx context.Context, facilityID string) (*models.CriticalityAssessment, error)
	Insert(ctx context.Context, assessment models.CriticalityAssessment) error
}

// Scorer là dịch vụ suy luận bên ngoài chấm điểm khẩn cấp cho các dòng sắp
// hết hàng. Đây là lời gọi chặn duy nhất của engine ra bên ngoài.
type Scorer interface {
	Score(ctx context.Context, facilityID string, lines []models.StockLine) (itemScores map[string]float64, overallScore float64, recommendation string, err error)
}

const fallbackRecommendation = "Automated assessment unavailable. Review low-stock items manually and prioritize items that are fully depleted."

// CriticalityCache giữ mỗi cơ sở một bản đánh giá còn hạn trong freshness
// window. Hết hạn hoặc chưa có thì gọi Scorer; Scorer lỗi thì tự tổng hợp
// fallback xác định — đường xếp hạng không bao giờ chết vì dịch vụ suy luận.
type CriticalityCache struct {
	store  AssessmentStore
	scorer Scorer
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewCriticalityCache(store AssessmentStore, scorer Scorer, window time.Duration, log zerolog.Logger) *CriticalityCache {
	return &CriticalityCache{
		store:  store,
		scorer: scorer,
		window: window,
		log:    log.With().Str("component", "criticality_cache").Logger(),
		now:    time.Now,
	}
}

// GetAssessment trả về bản đánh giá còn hạn của cơ sở, tính lại khi cần.
// Kết quả tính lại (kể cả fallback) được lưu thành bản ghi mới trước khi trả về.
func (c *CriticalityCache) GetAssessment(ctx context.Context, facilityID string, lowStockLines []models.StockLine) (models.CriticalityAssessment, error) {
	latest, err := c.store.Latest(ctx, facilityID)
	if err != nil {
		return models.CriticalityAssessment{}, err
	}
	if latest != nil && c.now().Sub(latest.ComputedAt) < c.window {
		return *latest, nil
	}

	assessment := c.compute(ctx, facilityID, lowStockLines)
	if err := c.store.Insert(ctx, assessment); err != nil {
		return models.CriticalityAssessment{}, err
	}
	return assessment, nil
}

func (c *CriticalityCache) compute(ctx context.Context, facilityID string, lines []models.StockLine) models.CriticalityAssessment {
	itemScores, overall, recommendation, err := c.scorer.Score(ctx, facilityID, lines)
	if err != nil {
		c.log.Warn().Err(err).Str("facilityID", facilityID).Msg("inference call failed, using fallback assessment")
		return c.fallback(facilityID, lines)
	}
	return models.CriticalityAssessment{
		FacilityID:     facilityID,
		ItemScores:     itemScores,
		OverallScore:   overall,
		Recommendation: recommendation,
		ComputedAt:     c.now(),
	}
}

// fallback chấm điểm xác định khi dịch vụ suy luận không dùng được:
// hết sạch = 10, dưới mức reorder = 7, còn lại = 5.
func (c *CriticalityCache) fallback(facilityID string, lines []models.StockLine) models.CriticalityAssessment {
	scores := make(map[string]float64, len(lines))
	for _, line := range lines {
		switch {
		case line.Quantity == 0:
			scores[line.ItemName] = 10
		case line.Quantity < line.ReorderLevel:
			scores[line.ItemName] = 7
		default:
			scores[line.ItemName] = 5
		}
	}
	return models.CriticalityAssessment{
		FacilityID:     facilityID,
		ItemScores:     scores,
		OverallScore:   5,
		Recommendation: fallbackRecommendation,
		ComputedAt:     c.now(),
	}
}
