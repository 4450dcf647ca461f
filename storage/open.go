package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"shopping-dashboard/config"
	"shopping-dashboard/utils"
)

// Open selects the dataset loader named by cfg.DatasetSource.
func Open(ctx context.Context, cfg *config.Config, logger *utils.Logger) (DatasetLoader, error) {
	source := strings.ToLower(cfg.DatasetSource)
	logger.Info("[storage] Opening %s dataset source", source)

	switch source {
	case config.SourceCSV:
		return NewCSVReader(cfg.DatasetPath), nil
	case config.SourceXLSX:
		return NewXLSXReader(cfg.DatasetPath, ""), nil
	case config.SourcePostgres, config.SourceSQLite:
		return OpenSQLStore(ctx, Dialect(source), cfg.DSN(), cfg.SQLTable, defaultRetry(cfg.MaxRetries, logger))
	}
	return nil, fmt.Errorf("storage: open %q: %w", cfg.DatasetSource, ErrUnknownSource)
}

// OpenFile picks a file loader from the path extension.
func OpenFile(path string) (DatasetLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVReader(path), nil
	case ".xlsx", ".xlsm":
		return NewXLSXReader(path, ""), nil
	}
	return nil, fmt.Errorf("storage: open %q: %w", path, ErrUnknownSource)
}
