package allocation

import (
	"context"
	"sort"

	"hospital-ops-api-server/internal/models"
)

// In-memory fakes for the store and collaborator interfaces, so the engine
// core can be exercised without MongoDB.

type memAssessmentStore struct {
	records []models.CriticalityAssessment
}

func (s *memAssessmentStore) Latest(_ context.Context, facilityID string) (*models.CriticalityAssessment, error) {
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].FacilityID == facilityID {
			record := s.records[i]
			return &record, nil
		}
	}
	return nil, nil
}

func (s *memAssessmentStore) Insert(_ context.Context, assessment models.CriticalityAssessment) error {
	s.records = append(s.records, assessment)
	return nil
}

type stubScorer struct {
	calls          int
	itemScores     map[string]float64
	overallScore   float64
	recommendation string
	err            error
}

func (s *stubScorer) Score(_ context.Context, _ string, _ []models.StockLine) (map[string]float64, float64, string, error) {
	s.calls++
	if s.err != nil {
		return nil, 0, "", s.err
	}
	return s.itemScores, s.overallScore, s.recommendation, nil
}

type memFacilities struct {
	facilities []models.Facility
}

func (f *memFacilities) ListFacilities(_ context.Context) ([]models.Facility, error) {
	return f.facilities, nil
}

func (f *memFacilities) Facility(_ context.Context, facilityID string) (*models.Facility, error) {
	for _, facility := range f.facilities {
		if facility.FacilityID == facilityID {
			found := facility
			return &found, nil
		}
	}
	return nil, nil
}

type memStock struct {
	lines []models.StockLine
}

func (s *memStock) LowStockLines(_ context.Context, facilityID string) ([]models.StockLine, error) {
	low := []models.StockLine{}
	for _, line := range s.lines {
		if line.FacilityID == facilityID && line.Quantity <= line.ReorderLevel {
			low = append(low, line)
		}
	}
	return low, nil
}

func (s *memStock) Line(_ context.Context, facilityID, itemName string) (*models.StockLine, error) {
	for _, line := range s.lines {
		if line.FacilityID == facilityID && line.ItemName == itemName {
			found := line
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memStock) quantity(facilityID, itemName string) int64 {
	for _, line := range s.lines {
		if line.FacilityID == facilityID && line.ItemName == itemName {
			return line.Quantity
		}
	}
	return 0
}

type stubAssessments struct {
	byFacility map[string]models.CriticalityAssessment
}

func (s *stubAssessments) GetAssessment(_ context.Context, facilityID string, _ []models.StockLine) (models.CriticalityAssessment, error) {
	return s.byFacility[facilityID], nil
}

type memPredictionStore struct {
	predictions []models.PredictedNeed
}

func (s *memPredictionStore) Insert(_ context.Context, prediction models.PredictedNeed) error {
	s.predictions = append(s.predictions, prediction)
	return nil
}

func (s *memPredictionStore) List(_ context.Context, facilityID string, excludeCompleted bool) ([]models.PredictedNeed, error) {
	result := []models.PredictedNeed{}
	for _, p := range s.predictions {
		if p.FacilityID != facilityID {
			continue
		}
		if excludeCompleted && p.Status != PredictionPending {
			continue
		}
		result = append(result, p)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PredictedDate.Before(result[j].PredictedDate)
	})
	return result, nil
}

func (s *memPredictionStore) FindByID(_ context.Context, predictionID string) (*models.PredictedNeed, error) {
	for _, p := range s.predictions {
		if p.PredictionID == predictionID {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memPredictionStore) UpdateStatusIfPending(_ context.Context, predictionID, newStatus string) (bool, error) {
	for i, p := range s.predictions {
		if p.PredictionID == predictionID && p.Status == PredictionPending {
			s.predictions[i].Status = newStatus
			return true, nil
		}
	}
	return false, nil
}

type memRequestStore struct {
	requests []models.DistributionRequest
}

func (s *memRequestStore) Insert(_ context.Context, request models.DistributionRequest) error {
	s.requests = append(s.requests, request)
	return nil
}

func (s *memRequestStore) FindByID(_ context.Context, requestID string) (*models.DistributionRequest, error) {
	for _, r := range s.requests {
		if r.RequestID == requestID {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memRequestStore) ListForFacility(_ context.Context, facilityID string) ([]models.DistributionRequest, error) {
	result := []models.DistributionRequest{}
	for _, r := range s.requests {
		if r.RequestingFacilityID == facilityID || r.SourceFacilityID == facilityID {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *memRequestStore) UpdateStatusIfPending(_ context.Context, requestID, newStatus string) (bool, error) {
	for i, r := range s.requests {
		if r.RequestID == requestID && r.Status == StatusPending {
			s.requests[i].Status = newStatus
			return true, nil
		}
	}
	return false, nil
}

// fakeExecutor mimics the transactional approval: validate every line first,
// then flip the status and apply all deltas, so a failing line leaves nothing
// half-applied.
type fakeExecutor struct {
	stock    *memStock
	requests *memRequestStore
}

func (e *fakeExecutor) ExecuteApproval(ctx context.Context, request models.DistributionRequest) error {
	stored, _ := e.requests.FindByID(ctx, request.RequestID)
	if stored == nil || stored.Status != StatusPending {
		return &InvalidTransitionError{RequestID: request.RequestID, To: StatusApproved}
	}
	for _, item := range request.Items {
		available := e.stock.quantity(request.SourceFacilityID, item.ItemName)
		if available < item.Quantity {
			return &InsufficientStockError{
				FacilityID: request.SourceFacilityID,
				ItemName:   item.ItemName,
				Requested:  item.Quantity,
				Available:  available,
			}
		}
	}
	e.requests.UpdateStatusIfPending(ctx, request.RequestID, StatusApproved)
	for _, item := range request.Items {
		e.apply(request.SourceFacilityID, item.ItemName, -item.Quantity)
		e.apply(request.RequestingFacilityID, item.ItemName, item.Quantity)
	}
	return nil
}

func (e *fakeExecutor) apply(facilityID, itemName string, delta int64) {
	for i, line := range e.stock.lines {
		if line.FacilityID == facilityID && line.ItemName == itemName {
			e.stock.lines[i].Quantity += delta
			return
		}
	}
	e.stock.lines = append(e.stock.lines, models.StockLine{
		FacilityID: facilityID,
		ItemName:   itemName,
		Quantity:   delta,
	})
}

type notification struct {
	facilityID string
	event      map[string]interface{}
}

type recordingNotifier struct {
	sent []notification
}

func (n *recordingNotifier) Notify(facilityID string, event interface{}) {
	payload, _ := event.(map[string]interface{})
	n.sent = append(n.sent, notification{facilityID: facilityID, event: payload})
}
