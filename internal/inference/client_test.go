package inference

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-ops-api-server/internal/models"

	"github.com/rs/zerolog"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(Config{WebhookURL: url, APIKey: "test-key", Timeout: timeout}, zerolog.Nop())
}

func testLines() []models.StockLine {
	return []models.StockLine{
		{FacilityID: "hosp-A", ItemName: "Paracetamol", Quantity: 0, ReorderLevel: 20, Category: "medicine"},
	}
}

func TestScore_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"itemScores":{"Paracetamol":9.5},"overallScore":8,"recommendation":"restock now"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	itemScores, overall, recommendation, err := client.Score(context.Background(), "hosp-A", testLines())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if itemScores["Paracetamol"] != 9.5 {
		t.Errorf("expected Paracetamol score 9.5, got %v", itemScores["Paracetamol"])
	}
	if overall != 8 {
		t.Errorf("expected overall 8, got %v", overall)
	}
	if recommendation != "restock now" {
		t.Errorf("expected recommendation, got %q", recommendation)
	}
}

func TestScore_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	if _, _, _, err := client.Score(context.Background(), "hosp-A", testLines()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestScore_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `low stock detected, please restock`},
		{"missing itemScores", `{"overallScore":5,"recommendation":"ok"}`},
		{"overall score out of range", `{"itemScores":{"Paracetamol":5},"overallScore":42,"recommendation":"ok"}`},
		{"item score out of range", `{"itemScores":{"Paracetamol":-1},"overallScore":5,"recommendation":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL, time.Second)
			if _, _, _, err := client.Score(context.Background(), "hosp-A", testLines()); err == nil {
				t.Fatal("expected error for malformed response")
			}
		})
	}
}

func TestScore_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"itemScores":{},"overallScore":5,"recommendation":"ok"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 20*time.Millisecond)
	if _, _, _, err := client.Score(context.Background(), "hosp-A", testLines()); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestScore_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := newTestClient(server.URL, time.Second)
	if _, _, _, err := client.Score(ctx, "hosp-A", testLines()); err == nil {
		t.Fatal("expected error when context deadline passes")
	}
}
