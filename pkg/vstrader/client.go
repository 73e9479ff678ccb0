// Package vstrader reads daily bars from a vstrader-compatible REST API.
package vstrader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"seriesaligner/internal/series"
)

// Client implements a bearer-authenticated daily-bars fetcher.
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewClient creates a new fetcher with optional proxy support.
func NewClient(baseURL, apiKey, proxyURL string, timeout time.Duration) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *Client) Name() string { return "vstrader" }

// bar is the JSON shape of one daily bar.
type bar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	AdjClose  float64 `json:"adj_close"`
	Volume    float64 `json:"volume"`
}

// DailyAdjustedCloses fetches the daily bars for symbol in [start, end].
func (c *Client) DailyAdjustedCloses(ctx context.Context, symbol string, start, end time.Time) ([]series.Point, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("start", start.Format(series.DateLayout))
	q.Set("end", end.Format(series.DateLayout))
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}

	var bars []bar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}

	points := make([]series.Point, 0, len(bars))
	for _, b := range bars {
		v := b.AdjClose
		if v == 0 {
			v = b.Close
		}
		if v == 0 {
			continue
		}
		points = append(points, series.Point{
			Date:     series.Day(time.Unix(b.Timestamp, 0).UTC()),
			AdjClose: v,
		})
	}
	// Ensure chronological order
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
