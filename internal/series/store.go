package series

import (
	"sort"
	"time"
)

// Store accumulates successful downloads in the order they were added.
// It is owned by a single goroutine.
type Store struct {
	order []string
	data  map[string]Series
}

func NewStore() *Store {
	return &Store{
		order: make([]string, 0),
		data:  make(map[string]Series),
	}
}

// Add stores s under its symbol. Re-adding a symbol replaces its points but keeps
// the original position.
func (s *Store) Add(ser Series) {
	if _, ok := s.data[ser.Symbol]; !ok {
		s.order = append(s.order, ser.Symbol)
	}
	cp := make([]Point, len(ser.Points))
	copy(cp, ser.Points)
	s.data[ser.Symbol] = Series{Symbol: ser.Symbol, Points: cp}
}

func (s *Store) GetBySymbol(symbol string) (Series, bool) {
	ser, ok := s.data[symbol]
	return ser, ok
}

// Symbols returns the stored symbols in insertion order.
func (s *Store) Symbols() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// GetAll returns every stored series in insertion order.
func (s *Store) GetAll() []Series {
	out := make([]Series, 0, len(s.order))
	for _, sym := range s.order {
		out = append(out, s.data[sym])
	}
	return out
}

func (s *Store) Len() int {
	return len(s.order)
}

// CountAll returns the total number of points stored across all symbols.
func (s *Store) CountAll() int {
	total := 0
	for _, ser := range s.data {
		total += len(ser.Points)
	}
	return total
}

// UnionDates returns the ascending, duplicate-free union of every stored date.
func (s *Store) UnionDates() []time.Time {
	seen := make(map[time.Time]struct{})
	var out []time.Time
	for _, ser := range s.data {
		for _, p := range ser.Points {
			if _, ok := seen[p.Date]; ok {
				continue
			}
			seen[p.Date] = struct{}{}
			out = append(out, p.Date)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
