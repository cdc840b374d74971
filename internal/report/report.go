// Package report writes measurement output lines.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/pointspeed/internal/model"
)

const fieldSep = "; "

var columns = []string{"i", "distance [px]", "time [s]"}

// Writer emits the header and one line per measurement.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps out in a buffered writer.
func NewWriter(out io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(out)}
}

// WriteHeader writes the screen size lines and the column header.
func (w *Writer) WriteHeader(bounds model.Bounds) error {
	lines := []string{
		formatRow("screen width", strconv.Itoa(bounds.Width)),
		formatRow("screen height", strconv.Itoa(bounds.Height)),
		formatRow(columns...),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w.w, line); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	return nil
}

// WriteMeasurement writes a single trial line.
func (w *Writer) WriteMeasurement(m model.Measurement) error {
	if _, err := fmt.Fprintln(w.w, FormatMeasurement(m)); err != nil {
		return fmt.Errorf("failed to write measurement: %w", err)
	}
	return nil
}

// Flush writes buffered lines to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// FormatMeasurement renders m as "<i>; <distance>; <seconds>".
func FormatMeasurement(m model.Measurement) string {
	return formatRow(
		strconv.FormatUint(uint64(m.Index), 10),
		formatFloat(m.Distance),
		formatFloat(m.Elapsed.Seconds()),
	)
}

func formatRow(fields ...string) string {
	return strings.Join(fields, fieldSep)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
