// Package yahoo is a minimal client for the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"seriesaligner/internal/series"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// ErrRateLimited is returned when the API answers 429 Too Many Requests.
var ErrRateLimited = errors.New("yahoo: rate limited")

type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	symbolMap  map[string]string // maps internal symbol to Yahoo ticker
}

// NewRESTClient creates a client with the given timeout and optional proxy URL.
func NewRESTClient(baseURL string, timeout time.Duration, proxyURL string) *RESTClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		symbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (c *RESTClient) Name() string { return "yahoo" }

func (c *RESTClient) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *RESTClient) yahooSymbol(symbol string) string {
	if mapped, ok := c.symbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// GetChart requests daily bars for symbol covering the calendar dates start..end
// inclusive.
func (c *RESTClient) GetChart(ctx context.Context, symbol string, start, end time.Time) (*ChartResponse, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(series.Day(start).Unix(), 10))
	q.Set("period2", strconv.FormatInt(series.Day(end).AddDate(0, 0, 1).Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "div|split")
	q.Set("includeAdjustedClose", "true")

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		c.baseURL, url.PathEscape(c.yahooSymbol(symbol)), q.Encode())

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}

	var chart ChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	// Yahoo reports unknown symbols as 404 with a chart.error payload
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	return &chart, nil
}

// DailyAdjustedCloses returns the adjusted closes for symbol in [start, end].
// An empty result is not an error.
func (c *RESTClient) DailyAdjustedCloses(ctx context.Context, symbol string, start, end time.Time) ([]series.Point, error) {
	chart, err := c.GetChart(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if len(chart.Chart.Result) == 0 {
		return nil, nil
	}

	points, err := ParseChart(chart.Chart.Result[0])
	if err != nil {
		return nil, fmt.Errorf("parse result: %w", err)
	}
	return points, nil
}
