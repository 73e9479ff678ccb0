package yahoo

import (
	"fmt"
	"sort"
	"time"

	"seriesaligner/internal/series"
)

// ParseChart converts a chart result into daily points. Bars whose adjusted close
// is null are skipped; when the adjclose block is absent the plain close is used.
func ParseChart(res ChartResult) ([]series.Point, error) {
	if len(res.Timestamp) == 0 {
		return nil, nil
	}

	values, err := adjustedCloses(res)
	if err != nil {
		return nil, err
	}
	if len(values) != len(res.Timestamp) {
		return nil, fmt.Errorf("yahoo: %d timestamps but %d prices", len(res.Timestamp), len(values))
	}

	out := make([]series.Point, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		v := values[i]
		if v == nil {
			continue // holiday or halted session
		}
		// shift into exchange time before taking the calendar date
		local := time.Unix(ts+res.Meta.GMTOffset, 0).UTC()
		out = append(out, series.Point{
			Date:     series.Day(local),
			AdjClose: *v,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func adjustedCloses(res ChartResult) ([]*float64, error) {
	if len(res.Indicators.AdjClose) > 0 {
		return res.Indicators.AdjClose[0].AdjClose, nil
	}
	if len(res.Indicators.Quote) > 0 {
		return res.Indicators.Quote[0].Close, nil
	}
	return nil, fmt.Errorf("yahoo: response has no close prices")
}
