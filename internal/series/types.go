package series

import "time"

// DateLayout is the calendar-date layout used in configuration and provider queries.
const DateLayout = "2006-01-02"

// Point is one daily observation of a symbol's adjusted close.
type Point struct {
	Date     time.Time `json:"date"`      // Calendar date, 00:00 UTC
	AdjClose float64   `json:"adj_close"` // Close adjusted for splits and dividends
}

// Series is the successful download of a single symbol.
type Series struct {
	Symbol string  `json:"symbol"` // Ticker as requested by the caller (e.g., "SPY")
	Points []Point `json:"points"` // Ascending by Date, one point per date
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Points)
}

// Dates returns the observation dates in order.
func (s Series) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}

// Day truncates t to its calendar date at 00:00 UTC, keeping t's wall-clock date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a calendar date.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
