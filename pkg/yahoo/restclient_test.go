package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seriesaligner/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Three NYSE sessions opening at 09:30 New York time, the middle adjclose null.
const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "SPY", "currency": "USD", "exchangeTimezoneName": "America/New_York", "gmtoffset": -18000, "dataGranularity": "1d"},
      "timestamp": [1704378600, 1704205800, 1704292200],
      "indicators": {
        "quote": [{"open": [1, 1, 1], "high": [1, 1, 1], "low": [1, 1, 1], "close": [470.5, 472.6, null], "volume": [1, 1, 1]}],
        "adjclose": [{"adjclose": [465.1, 467.2, null]}]
      }
    }],
    "error": null
  }
}`

func day(s string) time.Time {
	d, err := series.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestClient(t *testing.T, h http.HandlerFunc) *RESTClient {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewRESTClient(server.URL, 5*time.Second, "")
}

// go test -v --run TestDailyAdjustedCloses
func TestDailyAdjustedCloses(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/SPY", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1704153600", q.Get("period1"))
		assert.Equal(t, "1704412800", q.Get("period2"), "end date is inclusive")
		assert.Equal(t, "1d", q.Get("interval"))
		assert.Equal(t, "true", q.Get("includeAdjustedClose"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartBody))
	})

	points, err := client.DailyAdjustedCloses(context.Background(), "SPY", day("2024-01-02"), day("2024-01-04"))

	require.NoError(t, err)
	assert.Equal(t, []series.Point{
		{Date: day("2024-01-02"), AdjClose: 467.2},
		{Date: day("2024-01-04"), AdjClose: 465.1},
	}, points)
}

// go test -v --run TestDailyAdjustedClosesSymbolMap
func TestDailyAdjustedClosesSymbolMap(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/^GSPC", r.URL.Path)
		_, _ = w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
	})

	points, err := client.DailyAdjustedCloses(context.Background(), "SPX500", day("2024-01-02"), day("2024-01-04"))
	require.NoError(t, err)
	assert.Empty(t, points)
}

// go test -v --run TestDailyAdjustedClosesEmpty
func TestDailyAdjustedClosesEmpty(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"no result":     `{"chart": {"result": [], "error": null}}`,
		"no timestamps": `{"chart": {"result": [{"meta": {"symbol": "BND"}, "indicators": {"quote": [{}]}}], "error": null}}`,
	}
	for name, body := range bodies {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			points, err := client.DailyAdjustedCloses(context.Background(), "BND", day("2024-01-02"), day("2024-01-04"))
			require.NoError(t, err)
			assert.Empty(t, points)
		})
	}
}

// go test -v --run TestDailyAdjustedClosesErrors
func TestDailyAdjustedClosesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"rate limited", http.StatusTooManyRequests, "Too Many Requests", "rate limited"},
		{"unknown symbol", http.StatusNotFound, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`, "symbol may be delisted"},
		{"server error", http.StatusInternalServerError, "oops", "status 500"},
		{"malformed body", http.StatusOK, `{"chart": `, "decode response"},
		{"mismatched arrays", http.StatusOK, `{"chart": {"result": [{"timestamp": [1704205800, 1704292200], "indicators": {"adjclose": [{"adjclose": [1.0]}]}}]}}`, "2 timestamps but 1 prices"},
		{"no prices", http.StatusOK, `{"chart": {"result": [{"timestamp": [1704205800], "indicators": {}}]}}`, "no close prices"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.DailyAdjustedCloses(context.Background(), "TSLA", day("2024-01-02"), day("2024-01-04"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// go test -v --run TestDailyAdjustedClosesRateLimitedSentinel
func TestDailyAdjustedClosesRateLimitedSentinel(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.DailyAdjustedCloses(context.Background(), "TSLA", day("2024-01-02"), day("2024-01-04"))
	assert.ErrorIs(t, err, ErrRateLimited)
}

// go test -v --run TestDailyAdjustedClosesContextCancel
func TestDailyAdjustedClosesContextCancel(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(chartBody))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.DailyAdjustedCloses(ctx, "SPY", day("2024-01-02"), day("2024-01-04"))
	assert.Error(t, err)
}

// go test -v --run TestParseChartFallsBackToClose
func TestParseChartFallsBackToClose(t *testing.T) {
	t.Parallel()

	c := 10.5
	var res ChartResult
	res.Timestamp = []int64{1704205800}
	res.Indicators.Quote = []Quote{{Close: []*float64{&c}}}

	points, err := ParseChart(res)
	require.NoError(t, err)
	assert.Equal(t, []series.Point{{Date: day("2024-01-02"), AdjClose: 10.5}}, points)
}

// go test -v --run TestNewRESTClientDefaults
func TestNewRESTClientDefaults(t *testing.T) {
	t.Parallel()

	client := NewRESTClient("", 3*time.Second, "http://proxy.local:8080")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, 3*time.Second, client.HTTPClient().Timeout)
	assert.Equal(t, "yahoo", client.Name())
}
