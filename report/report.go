// Package report formats benchmark result records as CSV, key-value
// text, or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/weiihann/statbench/harness"
)

// Format selects the wire shape of emitted records.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatKeyValue Format = "key-value"
	FormatJSON     Format = "json"
)

// ParseFormat validates a user-supplied format name. Unknown values
// return FormatKeyValue along with an error so the caller can warn and
// fall back.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatKeyValue, FormatJSON:
		return Format(s), nil
	}

	return FormatKeyValue, fmt.Errorf("unknown format %q", s)
}

// Writer emits Result records to an underlying writer in one Format.
type Writer struct {
	w      io.Writer
	format Format
}

// NewWriter creates a Writer emitting records in the given format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Write emits one record. CSV is one comma-joined line with no header;
// key-value is one "key: value" line per field; JSON is one object per
// record. Field order is fixed across formats.
func (wr *Writer) Write(res harness.Result) error {
	switch wr.format {
	case FormatCSV:
		values := make([]string, 0, len(fieldNames))
		for _, f := range fields(res) {
			values = append(values, f.value)
		}

		if _, err := fmt.Fprintln(wr.w, strings.Join(values, ",")); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}

	case FormatJSON:
		if err := json.NewEncoder(wr.w).Encode(res); err != nil {
			return fmt.Errorf("write json record: %w", err)
		}

	default:
		for _, f := range fields(res) {
			if _, err := fmt.Fprintf(wr.w, "%s: %s\n", f.name, f.value); err != nil {
				return fmt.Errorf("write key-value record: %w", err)
			}
		}
	}

	return nil
}

var fieldNames = []string{
	"timestamp", "paths_found",
	"discover_secs", "discover_rate",
	"serial_secs", "serial_rate",
	"parallel_secs", "parallel_rate",
}

type field struct {
	name  string
	value string
}

// fields renders the record in output order, durations and rates with
// one decimal.
func fields(res harness.Result) []field {
	values := []string{
		fmt.Sprintf("%d", res.Timestamp),
		fmt.Sprintf("%d", res.PathsFound),
		fmt.Sprintf("%.1f", res.DiscoverSecs),
		fmt.Sprintf("%.1f", res.DiscoverRate),
		fmt.Sprintf("%.1f", res.SerialSecs),
		fmt.Sprintf("%.1f", res.SerialRate),
		fmt.Sprintf("%.1f", res.ParallelSecs),
		fmt.Sprintf("%.1f", res.ParallelRate),
	}

	out := make([]field, len(fieldNames))
	for i, name := range fieldNames {
		out[i] = field{name: name, value: values[i]}
	}

	return out
}
