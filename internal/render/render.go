// Package render writes a report in one of the supported output formats.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ranked-report/internal/collector"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// Formats lists the accepted output formats
var Formats = []Format{FormatTable, FormatJSON, FormatCSV}

func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case FormatTable, FormatJSON, FormatCSV:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q (expected table, json or csv)", ErrUnknownFormat, s)
	}
}

// Write renders the report to w using the given format.
func Write(w io.Writer, format Format, report *collector.Report) error {
	switch format {
	case FormatTable:
		return Table(w, report)
	case FormatJSON:
		return JSON(w, report)
	case FormatCSV:
		return CSV(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatWin(win bool) string {
	if win {
		return "W"
	}

	return "L"
}
