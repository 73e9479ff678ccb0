// Package aligner downloads adjusted-close series one symbol at a time and joins
// them into a date-aligned table.
package aligner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seriesaligner/internal/series"

	"go.uber.org/zap"
)

// Provider is the remote market-data source queried for each symbol.
type Provider interface {
	DailyAdjustedCloses(ctx context.Context, symbol string, start, end time.Time) ([]series.Point, error)
	Name() string
}

// Status tags the outcome of a single symbol download.
type Status int

const (
	StatusSucceeded Status = iota
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the result of one symbol download within a batch.
type Outcome struct {
	Symbol string
	Status Status
	Points int   // observations kept, zero unless Status is StatusSucceeded
	Err    error // ErrEmptyData or *FetchError, nil on success
}

// Result is everything a batch produced.
type Result struct {
	Table    *Table
	Outcomes []Outcome
}

// Err returns ErrNoDataDownloaded when no symbol succeeded.
func (r Result) Err() error {
	if r.Table == nil || r.Table.Empty() {
		return ErrNoDataDownloaded
	}
	return nil
}

// Succeeded returns the symbols that made it into the table, in request order.
func (r Result) Succeeded() []string {
	var out []string
	for _, o := range r.Outcomes {
		if o.Status == StatusSucceeded {
			out = append(out, o.Symbol)
		}
	}
	return out
}

// Aligner fetches series sequentially from a single provider.
type Aligner struct {
	provider Provider
	logger   *zap.Logger
}

func New(provider Provider, logger *zap.Logger) *Aligner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aligner{provider: provider, logger: logger}
}

// FetchSymbol downloads one symbol for the inclusive range [start, end].
// It returns an error wrapping ErrEmptyData when nothing is in range and a
// *FetchError when the provider call fails.
func (a *Aligner) FetchSymbol(ctx context.Context, symbol string, start, end time.Time) (series.Series, error) {
	a.logger.Info("downloading symbol", zap.String("symbol", symbol), zap.String("provider", a.provider.Name()))

	raw, err := a.provider.DailyAdjustedCloses(ctx, symbol, start, end)
	if err != nil {
		a.logger.Warn("error downloading symbol", zap.String("symbol", symbol), zap.Error(err))
		return series.Series{}, &FetchError{Symbol: symbol, Cause: err}
	}

	points := series.Normalize(raw, start, end)
	if len(points) == 0 {
		a.logger.Warn("no data available for symbol", zap.String("symbol", symbol))
		return series.Series{}, fmt.Errorf("%s: %w", symbol, ErrEmptyData)
	}

	a.logger.Info("successfully downloaded symbol",
		zap.String("symbol", symbol),
		zap.Int("points", len(points)),
		zap.Time("first", points[0].Date),
		zap.Time("last", points[len(points)-1].Date),
	)
	return series.Series{Symbol: symbol, Points: points}, nil
}

// FetchAll downloads every symbol in order, one call at a time, and joins the
// successes on the union of their dates. A failing symbol is recorded in its
// Outcome and never aborts the batch. When nothing succeeds the table has zero
// rows and columns and Result.Err reports ErrNoDataDownloaded.
func (a *Aligner) FetchAll(ctx context.Context, symbols []string, start, end time.Time) Result {
	a.logger.Info("fetching data",
		zap.String("symbols", strings.Join(symbols, ", ")),
		zap.String("start", start.Format(series.DateLayout)),
		zap.String("end", end.Format(series.DateLayout)),
	)

	store := series.NewStore()
	outcomes := make([]Outcome, 0, len(symbols))

	for _, symbol := range symbols {
		ser, err := a.FetchSymbol(ctx, symbol, start, end)
		switch {
		case err == nil:
			store.Add(ser)
			outcomes = append(outcomes, Outcome{Symbol: symbol, Status: StatusSucceeded, Points: ser.Len()})
		case errors.Is(err, ErrEmptyData):
			outcomes = append(outcomes, Outcome{Symbol: symbol, Status: StatusEmpty, Err: err})
		default:
			outcomes = append(outcomes, Outcome{Symbol: symbol, Status: StatusFailed, Err: err})
		}
	}

	table := Build(store)
	if table.Empty() {
		a.logger.Error("no data was downloaded successfully", zap.Int("requested", len(symbols)))
	} else {
		a.logger.Info("successfully downloaded data",
			zap.Strings("columns", table.Columns),
			zap.Int("points", store.CountAll()),
		)
	}
	a.logger.Info("data fetching complete")

	return Result{Table: table, Outcomes: outcomes}
}
