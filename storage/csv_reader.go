package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"shopping-dashboard/models"
)

// CSVReader loads the shopping-trends dataset from a CSV file with a header row.
type CSVReader struct {
	path string
}

func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

func (c *CSVReader) Load(ctx context.Context) ([]models.RawTransaction, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", c.path, err)
	}
	defer f.Close()

	return readCSV(ctx, f)
}

func readCSV(ctx context.Context, src io.Reader) ([]models.RawTransaction, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read: %w", err)
		}
		records = append(records, rec)

		if len(records)%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("csv: read: %w", err)
			}
		}
	}
	return rowsToRaw("csv", records)
}

func (c *CSVReader) Close() error { return nil }
