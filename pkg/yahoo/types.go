package yahoo

// ChartResponse is the envelope returned by the v8 chart endpoint.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"` // One entry per requested symbol
		Error  *ChartError   `json:"error"`  // Set instead of Result on failure
	} `json:"chart"`
}

type ChartError struct {
	Code        string `json:"code"`        // e.g., "Not Found"
	Description string `json:"description"` // Human-readable reason
}

type ChartResult struct {
	Meta       ChartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"` // Bar open time, seconds since epoch
	Indicators Indicators `json:"indicators"`
}

type ChartMeta struct {
	Symbol               string `json:"symbol"`
	Currency             string `json:"currency"`
	ExchangeTimezoneName string `json:"exchangeTimezoneName"` // e.g., "America/New_York"
	GMTOffset            int64  `json:"gmtoffset"`            // Exchange offset from UTC in seconds
	DataGranularity      string `json:"dataGranularity"`
}

// Indicators holds parallel arrays aligned with Timestamp. Entries are null on
// days without a print.
type Indicators struct {
	Quote    []Quote `json:"quote"`
	AdjClose []struct {
		AdjClose []*float64 `json:"adjclose"`
	} `json:"adjclose"`
}

type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}
