package storage

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"shopping-dashboard/models"
)

// XLSXReader loads the dataset from the first sheet of an Excel workbook.
type XLSXReader struct {
	path  string
	sheet string
}

// NewXLSXReader reads from sheet, or from the first sheet when sheet is empty.
func NewXLSXReader(path, sheet string) *XLSXReader {
	return &XLSXReader{path: path, sheet: sheet}
}

func (x *XLSXReader) Load(ctx context.Context) ([]models.RawTransaction, error) {
	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %q: %w", x.path, err)
	}
	defer f.Close()

	sheet := x.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx: %q has no sheets: %w", x.path, ErrMissingColumn)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	return rowsToRaw("xlsx", records)
}

func (x *XLSXReader) Close() error { return nil }
