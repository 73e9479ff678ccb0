package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"seriesaligner/internal/aligner"
	"seriesaligner/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(s string, v float64) series.Point {
	d, err := series.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return series.Point{Date: d, AdjClose: v}
}

func exampleTable() *aligner.Table {
	store := series.NewStore()
	store.Add(series.Series{Symbol: "A", Points: []series.Point{point("2024-01-01", 10), point("2024-01-03", 12)}})
	store.Add(series.Series{Symbol: "B", Points: []series.Point{point("2024-01-02", 5)}})
	return aligner.Build(store)
}

// go test -v --run TestSummary
func TestSummary(t *testing.T) {
	raw := exampleTable()
	var buf bytes.Buffer

	require.NoError(t, Summary(&buf, raw, aligner.FillMissing(raw), 5))

	out := buf.String()
	assert.Contains(t, out, "Data shape: (3, 2)")
	assert.Contains(t, out, "Available columns: [A, B]")
	assert.Contains(t, out, "First 5 rows of the data:")
	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "10.000000")
	assert.Contains(t, out, "NaN")
	assert.Contains(t, out, "Missing values in each column:")
	assert.Contains(t, out, "Missing values after forward fill:")
	assert.Contains(t, out, "Data is ready for analysis!")
	assert.Contains(t, out, "Available tickers: [A, B]")

	before := out[strings.Index(out, "Missing values in each column:"):strings.Index(out, "Missing values after forward fill:")]
	after := out[strings.Index(out, "Missing values after forward fill:"):]
	assert.Regexp(t, `A\s+1\n`, before)
	assert.Regexp(t, `B\s+2\n`, before)
	assert.Regexp(t, `A\s+0\n`, after)
	assert.Regexp(t, `B\s+1\n`, after)
}

// go test -v --run TestHead
func TestHead(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Head(&buf, aligner.FillMissing(exampleTable()).Head(2)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `Date\s+A\s+B`, lines[0])
	assert.Regexp(t, `2024-01-01\s+10\.000000\s+NaN`, lines[1])
	assert.Regexp(t, `2024-01-02\s+10\.000000\s+5\.000000`, lines[2])
}

// go test -v --run TestOutcomes
func TestOutcomes(t *testing.T) {
	var buf bytes.Buffer

	err := Outcomes(&buf, []aligner.Outcome{
		{Symbol: "TSLA", Status: aligner.StatusSucceeded, Points: 2535},
		{Symbol: "BND", Status: aligner.StatusEmpty, Err: fmt.Errorf("BND: %w", aligner.ErrEmptyData)},
		{Symbol: "SPY", Status: aligner.StatusFailed, Err: &aligner.FetchError{Symbol: "SPY", Cause: errors.New("timeout")}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Successfully downloaded TSLA (2535 rows)")
	assert.Contains(t, out, "No data available for BND")
	assert.Contains(t, out, "Error downloading SPY: fetch SPY: timeout")
	assert.Contains(t, out, separator)
}

// go test -v --run TestNoData
func TestNoData(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NoData(&buf))

	assert.Contains(t, buf.String(), "ERROR: No data was downloaded")
	assert.Contains(t, buf.String(), "check your internet connection")
	assert.Contains(t, buf.String(), "fewer tickers or a shorter time period")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

// go test -v --run TestSummaryWriteError
func TestSummaryWriteError(t *testing.T) {
	raw := exampleTable()

	err := Summary(failingWriter{}, raw, aligner.FillMissing(raw), 5)
	assert.EqualError(t, err, "closed pipe")
	assert.Error(t, NoData(failingWriter{}))
}
