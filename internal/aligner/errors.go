package aligner

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyData means the provider answered but had no observations in range.
	ErrEmptyData = errors.New("no data available")

	// ErrNoDataDownloaded means every symbol of a batch was empty or failed.
	ErrNoDataDownloaded = errors.New("no data was downloaded")
)

// FetchError wraps a provider failure for one symbol.
type FetchError struct {
	Symbol string
	Cause  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
