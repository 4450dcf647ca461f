package storage

import (
	"context"
	"errors"

	"shopping-dashboard/models"
)

var (
	// ErrMissingColumn is returned when a dataset lacks a required header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnknownSource is returned by Open for an unrecognised DATASET_SOURCE.
	ErrUnknownSource = errors.New("unknown dataset source")
)

// DatasetLoader is the interface any dataset source must satisfy.
type DatasetLoader interface {
	Load(ctx context.Context) ([]models.RawTransaction, error)
	Close() error
}

// TransactionWriter is the interface for persisting cleaned transactions.
type TransactionWriter interface {
	Write(ctx context.Context, rows []models.Transaction) error
	Close() error
}
