// Package output provides output formatting for kvdb-cli.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format selects how command results are rendered.
type Format string

const (
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
)

// ParseFormat validates and normalizes a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPlain, FormatJSON:
		return Format(s), nil
	case "":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want plain or json)", s)
	}
}

// Formatter renders command results to a writer.
type Formatter struct {
	w      io.Writer
	format Format
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer, format Format) *Formatter {
	return &Formatter{w: w, format: format}
}

// Print renders v: as indented JSON in JSON mode, or using plain in plain
// mode.
func (f *Formatter) Print(v any, plain string) error {
	if f.format == FormatJSON {
		enc := json.NewEncoder(f.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(f.w, plain)
	return err
}
