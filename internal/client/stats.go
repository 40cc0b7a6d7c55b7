package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"helmetwatch/internal/model"
)

const statsPath = "/stats"

// statsPayload keeps no_helmet as a pointer so a reply without the
// field is rejected instead of reading as zero.
type statsPayload struct {
	NoHelmet *int   `json:"no_helmet"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// StatsClient reads the daily no-helmet statistic.
type StatsClient struct {
	url  string
	http *http.Client
}

// NewStatsClient creates a client for baseURL + "/stats".
func NewStatsClient(baseURL string, httpClient *http.Client) *StatsClient {
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	return &StatsClient{url: baseURL + statsPath, http: httpClient}
}

// Fetch returns the current sample.
func (c *StatsClient) Fetch(ctx context.Context) (model.StatSample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return model.StatSample{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.StatSample{}, fmt.Errorf("%w: %v", ErrTransientRequest, err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		io.Copy(io.Discard, resp.Body)
		return model.StatSample{}, &StatusError{Endpoint: statsPath, StatusCode: resp.StatusCode}
	}

	var payload statsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.StatSample{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if payload.NoHelmet == nil {
		return model.StatSample{}, fmt.Errorf("%w: missing no_helmet", ErrInvalidPayload)
	}
	if *payload.NoHelmet < 0 {
		return model.StatSample{}, fmt.Errorf("%w: negative no_helmet %d", ErrInvalidPayload, *payload.NoHelmet)
	}
	return model.StatSample{NoHelmet: *payload.NoHelmet, Date: payload.Date, Time: payload.Time}, nil
}
