package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"hospital-ops-api-server/internal/allocation"
	"hospital-ops-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Minimal in-memory collaborators so the HTTP surface can be exercised
// end-to-end without MongoDB.

type fakeRequestStore struct {
	requests []models.DistributionRequest
}

func (s *fakeRequestStore) Insert(_ context.Context, request models.DistributionRequest) error {
	s.requests = append(s.requests, request)
	return nil
}

func (s *fakeRequestStore) FindByID(_ context.Context, requestID string) (*models.DistributionRequest, error) {
	for _, r := range s.requests {
		if r.RequestID == requestID {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeRequestStore) ListForFacility(_ context.Context, facilityID string) ([]models.DistributionRequest, error) {
	result := []models.DistributionRequest{}
	for _, r := range s.requests {
		if r.RequestingFacilityID == facilityID || r.SourceFacilityID == facilityID {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *fakeRequestStore) UpdateStatusIfPending(_ context.Context, requestID, newStatus string) (bool, error) {
	for i, r := range s.requests {
		if r.RequestID == requestID && r.Status == allocation.StatusPending {
			s.requests[i].Status = newStatus
			return true, nil
		}
	}
	return false, nil
}

type fakeStock struct {
	quantities map[string]int64 // key facilityID/itemName
}

func (s *fakeStock) Line(_ context.Context, facilityID, itemName string) (*models.StockLine, error) {
	if quantity, ok := s.quantities[facilityID+"/"+itemName]; ok {
		return &models.StockLine{FacilityID: facilityID, ItemName: itemName, Quantity: quantity, ReorderLevel: 10}, nil
	}
	return nil, nil
}

type fakeExecutor struct {
	store *fakeRequestStore
	stock *fakeStock
}

func (e *fakeExecutor) ExecuteApproval(ctx context.Context, request models.DistributionRequest) error {
	for _, item := range request.Items {
		available := e.stock.quantities[request.SourceFacilityID+"/"+item.ItemName]
		if available < item.Quantity {
			return &allocation.InsufficientStockError{
				FacilityID: request.SourceFacilityID,
				ItemName:   item.ItemName,
				Requested:  item.Quantity,
				Available:  available,
			}
		}
	}
	updated, err := e.store.UpdateStatusIfPending(ctx, request.RequestID, allocation.StatusApproved)
	if err != nil {
		return err
	}
	if !updated {
		return &allocation.InvalidTransitionError{RequestID: request.RequestID, To: allocation.StatusApproved}
	}
	for _, item := range request.Items {
		e.stock.quantities[request.SourceFacilityID+"/"+item.ItemName] -= item.Quantity
		e.stock.quantities[request.RequestingFacilityID+"/"+item.ItemName] += item.Quantity
	}
	return nil
}

type fakeFacilities struct{}

func (fakeFacilities) Facility(_ context.Context, facilityID string) (*models.Facility, error) {
	switch facilityID {
	case "hosp-B":
		return &models.Facility{FacilityID: "hosp-B", Name: "Bệnh viện B"}, nil
	case "hosp-C":
		return &models.Facility{FacilityID: "hosp-C", Name: "Phòng khám C"}, nil
	}
	return nil, nil
}

func newTestRouter() (*gin.Engine, *fakeStock) {
	gin.SetMode(gin.TestMode)

	store := &fakeRequestStore{}
	stock := &fakeStock{quantities: map[string]int64{"hosp-C/Paracetamol": 50}}
	workflow := allocation.NewWorkflow(store, stock, &fakeExecutor{store: store, stock: stock}, fakeFacilities{}, nil, zerolog.Nop())

	handler := &RequestHandler{Workflow: workflow}
	router := gin.New()
	router.POST("/request", handler.CreateRequest)
	router.GET("/requests/:facilityId", handler.GetRequestsByFacility)
	router.PUT("/request/:requestId/status", handler.SetRequestStatus)
	return router, stock
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createTestRequest(t *testing.T, router *gin.Engine, quantity int64) models.DistributionRequest {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/request",
		`{"requestingAdminId":"hosp-B","sourceAdminId":"hosp-C","items":[{"itemName":"Paracetamol","quantity":`+jsonInt(quantity)+`,"priority":"high"}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var request models.DistributionRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &request); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return request
}

func jsonInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestCreateRequestEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	request := createTestRequest(t, router, 15)
	if request.Status != allocation.StatusPending {
		t.Errorf("expected pending, got %s", request.Status)
	}
	if request.RequestingFacilityName != "Bệnh viện B" {
		t.Errorf("expected resolved facility name, got %q", request.RequestingFacilityName)
	}
	if request.Items[0].SnapshotStock == nil || *request.Items[0].SnapshotStock != 50 {
		t.Errorf("expected snapshot stock 50, got %v", request.Items[0].SnapshotStock)
	}
}

func TestCreateRequestEndpoint_BadBody(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/request", `{"sourceAdminId":"hosp-C","items":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/request",
		`{"requestingAdminId":"hosp-B","sourceAdminId":"hosp-C","items":[{"itemName":"Paracetamol","quantity":0}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero quantity, got %d", rec.Code)
	}
}

func TestSetRequestStatusEndpoint(t *testing.T) {
	router, stock := newTestRouter()
	request := createTestRequest(t, router, 15)

	rec := doJSON(t, router, http.MethodPut, "/request/"+request.RequestID+"/status", `{"status":"approved"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := stock.quantities["hosp-C/Paracetamol"]; got != 35 {
		t.Errorf("expected source quantity 35, got %d", got)
	}
	if got := stock.quantities["hosp-B/Paracetamol"]; got != 15 {
		t.Errorf("expected destination quantity 15, got %d", got)
	}

	// Terminal state: a second approval is a conflict, not a re-run.
	rec = doJSON(t, router, http.MethodPut, "/request/"+request.RequestID+"/status", `{"status":"approved"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for re-approval, got %d", rec.Code)
	}
	if got := stock.quantities["hosp-C/Paracetamol"]; got != 35 {
		t.Errorf("transfer was double-applied: %d", got)
	}
}

func TestSetRequestStatusEndpoint_Errors(t *testing.T) {
	router, _ := newTestRouter()

	rec := doJSON(t, router, http.MethodPut, "/request/TREQ-missing/status", `{"status":"approved"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown request, got %d", rec.Code)
	}

	request := createTestRequest(t, router, 500) // more than the source holds
	rec = doJSON(t, router, http.MethodPut, "/request/"+request.RequestID+"/status", `{"status":"approved"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for insufficient stock, got %d: %s", rec.Code, rec.Body.String())
	}

	// The failed approval leaves the request pending and listable.
	listRec := doJSON(t, router, http.MethodGet, "/requests/hosp-B", "")
	var requests []models.DistributionRequest
	if err := json.Unmarshal(listRec.Body.Bytes(), &requests); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	for _, r := range requests {
		if r.RequestID == request.RequestID && r.Status != allocation.StatusPending {
			t.Errorf("expected request to stay pending, got %s", r.Status)
		}
	}
}
