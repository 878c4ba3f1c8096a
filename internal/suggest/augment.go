package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"goalcast/internal/model"
	"goalcast/internal/stats"
)

// Augmenter generates additional suggestions from an external service.
// Implementations may be unavailable; callers treat any error as "no
// suggestions".
type Augmenter interface {
	Generate(ctx context.Context, sc model.SuggestionContext) ([]model.Suggestion, error)
}

// NoopAugmenter returns no suggestions. Used when no endpoint is
// configured and in tests.
type NoopAugmenter struct{}

// Generate implements Augmenter.
func (NoopAugmenter) Generate(context.Context, model.SuggestionContext) ([]model.Suggestion, error) {
	return nil, nil
}

// HTTPAugmenter posts the forecast context to a remote suggestion service
// and decodes whatever suggestions come back. Responses are appended by
// the engine without validation or deduplication.
type HTTPAugmenter struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPAugmenter returns an HTTPAugmenter for the given endpoint. The
// credential is optional. timeout guards the remote call; zero means a
// 15 second default.
func NewHTTPAugmenter(endpoint, apiKey string, timeout time.Duration) *HTTPAugmenter {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPAugmenter{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// augmentRequest is the wire shape sent to the augmentation service.
type augmentRequest struct {
	TargetAmount        float64              `json:"targetAmount"`
	MonthsToDeadline    int                  `json:"monthsToDeadline"`
	MonthlyGap          float64              `json:"monthlyGap"`
	P50Capacity         float64              `json:"p50Capacity"`
	BaselineMonths      []string             `json:"baselineMonths"`
	CategoryMedians     map[string]float64   `json:"categoryMedians"`
	CategoryHistory     map[string][]float64 `json:"categoryHistory"`
	ProtectedCategories []string             `json:"protectedCategories,omitempty"`
}

// Generate implements Augmenter.
func (a *HTTPAugmenter) Generate(ctx context.Context, sc model.SuggestionContext) ([]model.Suggestion, error) {
	months := make([]string, len(sc.BaselineMonths))
	for i, m := range sc.BaselineMonths {
		months[i] = m.String()
	}
	medians := make(map[string]float64, len(sc.CategoryHistory))
	for cat, values := range sc.CategoryHistory {
		medians[cat] = stats.Median(values)
	}

	body, err := json.Marshal(augmentRequest{
		TargetAmount:        sc.TargetAmount,
		MonthsToDeadline:    sc.MonthsToDeadline,
		MonthlyGap:          sc.Gap,
		P50Capacity:         sc.P50,
		BaselineMonths:      months,
		CategoryMedians:     medians,
		CategoryHistory:     sc.CategoryHistory,
		ProtectedCategories: sc.Goal.ProtectedCategories,
	})
	if err != nil {
		return nil, fmt.Errorf("encode augment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create augment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute augment request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("augment service returned status %d", resp.StatusCode)
	}

	var suggestions []model.Suggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return nil, fmt.Errorf("decode augment response: %w", err)
	}
	return suggestions, nil
}
