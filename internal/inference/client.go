// server/internal/inference/client.go
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hospital-ops-api-server/internal/models"

	"github.com/rs/zerolog"
)

// Client gọi webhook đánh giá khẩn cấp bên ngoài. Webhook nhận danh sách các
// dòng sắp hết hàng của một cơ sở và phải trả về đúng JSON
// {itemScores, overallScore, recommendation}; mọi sai khác đều là lỗi và
// CriticalityCache sẽ rơi về fallback.
type Client struct {
	webhookURL string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

type Config struct {
	WebhookURL string
	APIKey     string
	Timeout    time.Duration
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		webhookURL: cfg.WebhookURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "inference_client").Logger(),
	}
}

type scoreLine struct {
	ItemName     string `json:"itemName"`
	Quantity     int64  `json:"quantity"`
	ReorderLevel int64  `json:"reorderLevel"`
	Category     string `json:"category"`
}

type scoreRequest struct {
	FacilityID    string      `json:"facilityId"`
	LowStockLines []scoreLine `json:"lowStockLines"`
}

type scoreResponse struct {
	ItemScores     map[string]float64 `json:"itemScores"`
	OverallScore   float64            `json:"overallScore"`
	Recommendation string             `json:"recommendation"`
}

// Score implements allocation.Scorer.
func (c *Client) Score(ctx context.Context, facilityID string, lines []models.StockLine) (map[string]float64, float64, string, error) {
	payload := scoreRequest{FacilityID: facilityID, LowStockLines: make([]scoreLine, 0, len(lines))}
	for _, line := range lines {
		payload.LowStockLines = append(payload.LowStockLines, scoreLine{
			ItemName:     line.ItemName,
			Quantity:     line.Quantity,
			ReorderLevel: line.ReorderLevel,
			Category:     line.Category,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, "", fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, 0, "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, "", fmt.Errorf("inference call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, "", fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	var result scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, "", fmt.Errorf("decode inference response: %w", err)
	}
	if result.ItemScores == nil {
		return nil, 0, "", fmt.Errorf("inference response missing itemScores")
	}
	if result.OverallScore < 0 || result.OverallScore > 10 {
		return nil, 0, "", fmt.Errorf("inference overallScore out of range: %v", result.OverallScore)
	}
	for item, score := range result.ItemScores {
		if score < 0 || score > 10 {
			return nil, 0, "", fmt.Errorf("inference score out of range for %s: %v", item, score)
		}
	}

	return result.ItemScores, result.OverallScore, result.Recommendation, nil
}
