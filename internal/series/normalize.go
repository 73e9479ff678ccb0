package series

import (
	"sort"
	"time"
)

// Normalize truncates every point to its calendar date, drops points outside the
// inclusive range [start, end], sorts ascending and keeps the last value seen for
// a repeated date. The input slice is not modified.
func Normalize(points []Point, start, end time.Time) []Point {
	from, to := Day(start), Day(end)

	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		d := Day(p.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		byDate[d] = p.AdjClose
	}

	out := make([]Point, 0, len(byDate))
	for d, v := range byDate {
		out = append(out, Point{Date: d, AdjClose: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
