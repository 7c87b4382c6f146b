// server/internal/allocation/ranker.go
package allocation

import (
	"context"
	"sort"

	"hospital-ops-api-server/internal/models"

	"github.com/rs/zerolog"
)

// FacilityLister liệt kê các cơ sở trong danh bạ.
type FacilityLister interface {
	ListFacilities(ctx context.Context) ([]models.Facility, error)
}

// StockReader đọc các dòng tồn kho sắp hết (quantity <= reorderLevel).
type StockReader interface {
	LowStockLines(ctx context.Context, facilityID string) ([]models.StockLine, error)
}

// AssessmentProvider cấp bản đánh giá khẩn cấp còn hạn (xem CriticalityCache).
type AssessmentProvider interface {
	GetAssessment(ctx context.Context, facilityID string, lowStockLines []models.StockLine) (models.CriticalityAssessment, error)
}

// PredictionLister đọc các dự báo nhu cầu của một cơ sở.
type PredictionLister interface {
	ListPredictions(ctx context.Context, facilityID string, excludeCompleted bool) ([]models.PredictedNeed, error)
}

// ItemNeed là một dòng sắp hết hàng đã được phân loại và chấm điểm.
type ItemNeed struct {
	ItemName         string  `json:"itemName"`
	Quantity         int64   `json:"quantity"`
	ReorderLevel     int64   `json:"reorderLevel"`
	Unit             string  `json:"unit"`
	Category         string  `json:"category"`
	Priority         string  `json:"priority"`
	PriorityRank     int     `json:"priorityRank"` // high=1, medium=2, low=3
	CriticalityScore float64 `json:"criticalityScore"`
}

// FacilityNeed là một cơ sở cần hỗ trợ, kèm danh sách mặt hàng đã xếp thứ tự
// và các dự báo nhu cầu (tín hiệu độc lập, không trộn vào danh sách mặt hàng).
type FacilityNeed struct {
	FacilityID     string                 `json:"facilityID"`
	Name           string                 `json:"name"`
	City           string                 `json:"city"`
	Email          string                 `json:"email"`
	Items          []ItemNeed             `json:"items"`
	OverallScore   float64                `json:"overallScore"`
	Recommendation string                 `json:"recommendation"`
	PredictedNeeds []models.PredictedNeed `json:"predictedNeeds"`

	lowTierCount int
	maxRank      int
}

// Ranker ghép Classify với CriticalityCache để trả lời câu hỏi
// "cơ sở nào đang cần hỗ trợ, và cần gì nhất".
type Ranker struct {
	facilities  FacilityLister
	stock       StockReader
	assessments AssessmentProvider
	predictions PredictionLister
	log         zerolog.Logger
}

func NewRanker(facilities FacilityLister, stock StockReader, assessments AssessmentProvider, predictions PredictionLister, log zerolog.Logger) *Ranker {
	return &Ranker{
		facilities:  facilities,
		stock:       stock,
		assessments: assessments,
		predictions: predictions,
		log:         log.With().Str("component", "ranker").Logger(),
	}
}

// RankFacilitiesNeedingHelp duyệt mọi cơ sở trừ cơ sở của người gọi, gom các
// dòng sắp hết hàng và dự báo nhu cầu, rồi xếp hạng. Cơ sở không có dòng sắp
// hết và không có dự báo thì không xuất hiện trong kết quả.
//
// Trong một cơ sở, mặt hàng sắp theo hạng ưu tiên tăng dần (khẩn cấp trước),
// hòa thì theo điểm khẩn cấp giảm dần. Giữa các cơ sở, sắp theo số mặt hàng
// tier low giảm dần, rồi theo hạng số lớn nhất giảm dần.
func (r *Ranker) RankFacilitiesNeedingHelp(ctx context.Context, excludingFacilityID string) ([]FacilityNeed, error) {
	facilities, err := r.facilities.ListFacilities(ctx)
	if err != nil {
		return nil, err
	}

	needs := []FacilityNeed{}
	for _, facility := range facilities {
		if facility.FacilityID == excludingFacilityID {
			continue
		}

		lowLines, err := r.stock.LowStockLines(ctx, facility.FacilityID)
		if err != nil {
			return nil, err
		}
		predictions, err := r.predictions.ListPredictions(ctx, facility.FacilityID, true)
		if err != nil {
			return nil, err
		}
		if len(lowLines) == 0 && len(predictions) == 0 {
			continue
		}

		need := FacilityNeed{
			FacilityID:     facility.FacilityID,
			Name:           facility.Name,
			City:           facility.City,
			Email:          facility.Email,
			Items:          []ItemNeed{},
			PredictedNeeds: predictions,
		}

		if len(lowLines) > 0 {
			assessment, err := r.assessments.GetAssessment(ctx, facility.FacilityID, lowLines)
			if err != nil {
				return nil, err
			}
			need.OverallScore = assessment.OverallScore
			need.Recommendation = assessment.Recommendation

			for _, line := range lowLines {
				tier := Classify(line)
				rank := TierRank(tier)
				need.Items = append(need.Items, ItemNeed{
					ItemName:         line.ItemName,
					Quantity:         line.Quantity,
					ReorderLevel:     line.ReorderLevel,
					Unit:             line.Unit,
					Category:         line.Category,
					Priority:         tier,
					PriorityRank:     rank,
					CriticalityScore: assessment.ItemScores[line.ItemName],
				})
				if tier == PriorityLow {
					need.lowTierCount++
				}
				if rank > need.maxRank {
					need.maxRank = rank
				}
			}

			sort.SliceStable(need.Items, func(i, j int) bool {
				if need.Items[i].PriorityRank != need.Items[j].PriorityRank {
					return need.Items[i].PriorityRank < need.Items[j].PriorityRank
				}
				return need.Items[i].CriticalityScore > need.Items[j].CriticalityScore
			})
		}

		needs = append(needs, need)
	}

	sort.SliceStable(needs, func(i, j int) bool {
		if needs[i].lowTierCount != needs[j].lowTierCount {
			return needs[i].lowTierCount > needs[j].lowTierCount
		}
		return needs[i].maxRank > needs[j].maxRank
	})

	return needs, nil
}
