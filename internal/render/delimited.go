package render

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Delimited writes a header row followed by data rows with the given
// delimiter (comma for CSV, tab for TSV).
func Delimited(headers []string, rows [][]string, delimiter rune) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("write header row: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write data rows: %w", err)
	}

	return buf.String(), nil
}
