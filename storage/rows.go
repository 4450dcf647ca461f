package storage

import (
	"fmt"
	"strings"

	"shopping-dashboard/models"
)

// rowsToRaw maps positional records onto header names. The header row is
// records[0]; ragged rows are padded with empty cells.
func rowsToRaw(source string, records [][]string) ([]models.RawTransaction, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty dataset: %w", source, ErrMissingColumn)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if err := checkHeader(source, header); err != nil {
		return nil, err
	}

	out := make([]models.RawTransaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		cells := make(map[string]string, len(header))
		for j, col := range header {
			if col == "" {
				continue
			}
			if j < len(rec) {
				cells[col] = rec[j]
			} else {
				cells[col] = ""
			}
		}
		out = append(out, models.RawTransaction{Cells: cells, Line: i + 2})
	}
	return out, nil
}

func checkHeader(source string, header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, col := range models.RequiredColumns {
		if !present[col] {
			return fmt.Errorf("%s: column %q: %w", source, col, ErrMissingColumn)
		}
	}
	return nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
