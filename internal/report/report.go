// Package report prints the console summary of an aligned table.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"seriesaligner/internal/aligner"
	"seriesaligner/internal/series"

	"github.com/guregu/null/v6"
)

const separator = "--------------------------------------------------"

// errWriter remembers the first write error so callers check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// Outcomes prints one line per requested symbol.
func Outcomes(w io.Writer, outcomes []aligner.Outcome) error {
	ew := &errWriter{w: w}
	for _, o := range outcomes {
		switch o.Status {
		case aligner.StatusSucceeded:
			ew.printf("Successfully downloaded %s (%d rows)\n", o.Symbol, o.Points)
		case aligner.StatusEmpty:
			ew.printf("No data available for %s\n", o.Symbol)
		default:
			ew.printf("Error downloading %s: %v\n", o.Symbol, o.Err)
		}
	}
	ew.printf("%s\n", separator)
	return ew.err
}

// NoData prints the terminal message used when nothing was downloaded.
func NoData(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("ERROR: No data was downloaded. Please check your internet connection and try again.\n")
	ew.printf("You can also try downloading fewer tickers or a shorter time period.\n")
	return ew.err
}

// Summary prints shape, columns, the first headRows rows and the missing counts
// of raw and filled.
func Summary(w io.Writer, raw, filled *aligner.Table, headRows int) error {
	ew := &errWriter{w: w}

	rows, cols := raw.Shape()
	ew.printf("Data shape: (%d, %d)\n", rows, cols)
	ew.printf("Available columns: [%s]\n", strings.Join(raw.Columns, ", "))

	ew.printf("\nFirst %d rows of the data:\n", headRows)
	if ew.err == nil {
		ew.err = Head(w, raw.Head(headRows))
	}

	ew.printf("\nMissing values in each column:\n")
	if ew.err == nil {
		ew.err = counts(w, raw.MissingCounts())
	}

	ew.printf("\nMissing values after forward fill:\n")
	if ew.err == nil {
		ew.err = counts(w, filled.MissingCounts())
	}

	ew.printf("\nData is ready for analysis!\n")
	ew.printf("Available tickers: [%s]\n", strings.Join(filled.Columns, ", "))
	return ew.err
}

// Head prints t as an aligned text table with a Date column.
func Head(w io.Writer, t *aligner.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	ew := &errWriter{w: tw}

	ew.printf("Date\t%s\t\n", strings.Join(t.Columns, "\t"))
	for i, d := range t.Index {
		cells := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			cells = append(cells, formatCell(t.Values[c][i]))
		}
		ew.printf("%s\t%s\t\n", d.Format(series.DateLayout), strings.Join(cells, "\t"))
	}
	if ew.err != nil {
		return ew.err
	}
	return tw.Flush()
}

func counts(w io.Writer, cc []aligner.ColumnCount) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	ew := &errWriter{w: tw}
	for _, c := range cc {
		ew.printf("%s\t%d\n", c.Column, c.Count)
	}
	if ew.err != nil {
		return ew.err
	}
	return tw.Flush()
}

func formatCell(v null.Float) string {
	if !v.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(v.Float64, 'f', 6, 64)
}
