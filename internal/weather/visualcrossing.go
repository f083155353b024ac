package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/naemfares/weathermail/internal/domain"
	"github.com/sony/gobreaker"
)

const defaultBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"

// VisualCrossing fetches daily forecasts from the Visual Crossing timeline
// API. Requests carry a per-call timeout and go through a circuit breaker so
// a dead provider fails fast instead of holding a notifier cycle hostage.
type VisualCrossing struct {
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
	circuit *gobreaker.CircuitBreaker
}

func NewVisualCrossing(apiKey string, timeout time.Duration) *VisualCrossing {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "visualcrossing",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &VisualCrossing{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
		timeout: timeout,
		circuit: cb,
	}
}

// WithBaseURL points the client at a different endpoint. Used in tests.
func (v *VisualCrossing) WithBaseURL(base string) *VisualCrossing {
	v.baseURL = base
	return v
}

type timelineResponse struct {
	Days []struct {
		Datetime    string  `json:"datetime"`
		TempMin     float64 `json:"tempmin"`
		TempMax     float64 `json:"tempmax"`
		Description string  `json:"description"`
		PrecipProb  float64 `json:"precipprob"`
		WindSpeed   float64 `json:"windspeed"`
	} `json:"days"`
}

func (v *VisualCrossing) Forecast(ctx context.Context, city string, days int) ([]domain.DayForecast, error) {
	if days < 1 || days > 15 {
		return nil, fmt.Errorf("%w: forecast days must be between 1 and 15, got %d", domain.ErrProvider, days)
	}

	values := url.Values{}
	values.Set("key", v.apiKey)
	values.Set("unitGroup", "metric")
	values.Set("contentType", "json")
	u := fmt.Sprintf("%s/%s?%s", v.baseURL, url.PathEscape(city), values.Encode())

	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrProvider, err)
	}

	result, err := v.circuit.Execute(func() (interface{}, error) {
		resp, execErr := v.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var payload timelineResponse
		if decErr := json.NewDecoder(resp.Body).Decode(&payload); decErr != nil {
			return nil, fmt.Errorf("decode response: %w", decErr)
		}
		return &payload, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	payload := result.(*timelineResponse)
	if len(payload.Days) == 0 {
		return nil, fmt.Errorf("%w: empty forecast for %q", domain.ErrProvider, city)
	}

	if days > len(payload.Days) {
		days = len(payload.Days)
	}

	forecast := make([]domain.DayForecast, 0, days)
	for _, day := range payload.Days[:days] {
		desc := day.Description
		if desc == "" {
			desc = "No description available"
		}
		forecast = append(forecast, domain.DayForecast{
			Date:         day.Datetime,
			MinTemp:      day.TempMin,
			MaxTemp:      day.TempMax,
			Description:  desc,
			PrecipChance: day.PrecipProb,
			WindSpeed:    day.WindSpeed,
		})
	}
	return forecast, nil
}
