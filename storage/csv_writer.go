package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"shopping-dashboard/models"
)

// CSVWriter exports cleaned transactions using the dataset's own header names,
// so the output can be loaded again by CSVReader.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(models.Columns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	return &CSVWriter{file: f, writer: w}, nil
}

func (c *CSVWriter) Write(ctx context.Context, rows []models.Transaction) error {
	for i := range rows {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("csv: write: %w", err)
			}
		}
		if err := c.writer.Write(record(&rows[i])); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// record renders a transaction in models.Columns order.
func record(t *models.Transaction) []string {
	out := make([]string, len(models.Columns))
	for i, col := range models.Columns {
		switch col {
		case models.ColCustomerID:
			out[i] = strconv.FormatInt(t.CustomerID, 10)
		case models.ColAge, models.ColPurchaseAmount, models.ColReviewRating, models.ColPreviousPurchases:
			out[i] = strconv.FormatFloat(t.Numeric(col), 'f', -1, 64)
		default:
			out[i] = t.Categorical(col)
		}
	}
	return out
}
