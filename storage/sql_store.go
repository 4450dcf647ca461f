package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"shopping-dashboard/models"
	"shopping-dashboard/utils"
)

// Dialect selects placeholder style and schema types for SQLStore.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func (d Dialect) driver() string {
	return string(d)
}

func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqlColumns mirrors models.Columns.
var sqlColumns = []string{
	"customer_id", "age", "gender", "item_purchased", "category", "purchase_amount",
	"location", "size", "color", "season", "review_rating", "subscription_status",
	"shipping_type", "discount_applied", "promo_code_used", "previous_purchases",
	"payment_method", "frequency_of_purchases",
}

const batchSize = 50

// SQLStore persists cleaned transactions to PostgreSQL or SQLite and loads them
// back as a dataset.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

// NewSQLStore wraps an already-open database handle.
func NewSQLStore(db *sql.DB, dialect Dialect, table string) (*SQLStore, error) {
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("sql: dialect %q: %w", dialect, ErrUnknownSource)
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("sql: invalid table name %q", table)
	}
	return &SQLStore{db: db, dialect: dialect, table: table}, nil
}

// OpenSQLStore opens a connection, waits for the server with retry, and runs
// schema migrations.
func OpenSQLStore(ctx context.Context, dialect Dialect, dsn, table string, retry *utils.RetryConfig) (*SQLStore, error) {
	db, err := sql.Open(dialect.driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", dialect, err)
	}

	store, err := NewSQLStore(db, dialect, table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := retry.Do(ctx, string(dialect)+" ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Migrate creates the transactions table and its indexes if they do not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	id, num, txt := "SERIAL PRIMARY KEY", "DOUBLE PRECISION", "TEXT"
	if s.dialect == DialectSQLite {
		id, num = "INTEGER PRIMARY KEY AUTOINCREMENT", "REAL"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id                     %s,
			customer_id            BIGINT NOT NULL DEFAULT 0,
			age                    %s NOT NULL,
			gender                 %s NOT NULL,
			item_purchased         %s NOT NULL,
			category               %s NOT NULL,
			purchase_amount        %s NOT NULL,
			location               %s NOT NULL DEFAULT '',
			size                   %s NOT NULL DEFAULT '',
			color                  %s NOT NULL DEFAULT '',
			season                 %s NOT NULL,
			review_rating          %s NOT NULL DEFAULT 0,
			subscription_status    %s NOT NULL DEFAULT '',
			shipping_type          %s NOT NULL DEFAULT '',
			discount_applied       %s NOT NULL DEFAULT '',
			promo_code_used        %s NOT NULL DEFAULT '',
			previous_purchases     %s NOT NULL DEFAULT 0,
			payment_method         %s NOT NULL DEFAULT '',
			frequency_of_purchases %s NOT NULL DEFAULT ''
		)`, s.table, id, num, txt, txt, txt, num, txt, txt, txt, txt, num, txt, txt, txt, txt, num, txt, txt),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_category ON %s(category)`, s.table, s.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_season ON %s(season)`, s.table, s.table),
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: migrate: %w", s.dialect, err)
		}
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// clear deletes all existing transactions from the table.
func (s *SQLStore) clear(ctx context.Context, ex execer) error {
	if _, err := ex.ExecContext(ctx, "DELETE FROM "+s.table); err != nil {
		return fmt.Errorf("%s: clear: %w", s.dialect, err)
	}
	return nil
}

// Write replaces the stored dataset with rows in a single transaction. On any
// failure the previous rows are kept.
func (s *SQLStore) Write(ctx context.Context, rows []models.Transaction) (err error) {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", s.dialect, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.clear(ctx, tx); err != nil {
		return err
	}

	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err = s.insertBatch(ctx, tx, rows[i:end]); err != nil {
			return fmt.Errorf("%s: insert rows %d-%d: %w", s.dialect, i, end-1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", s.dialect, err)
	}
	return nil
}

func (s *SQLStore) insertBatch(ctx context.Context, ex execer, batch []models.Transaction) error {
	width := len(sqlColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*width)

	for idx := range batch {
		t := &batch[idx]
		marks := make([]string, width)
		for c := range marks {
			marks[c] = s.dialect.placeholder(idx*width + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(marks, ",")+")")
		valueArgs = append(valueArgs,
			t.CustomerID, t.Age, t.Gender, t.Item, t.Category, t.PurchaseAmount,
			t.Location, t.Size, t.Color, t.Season, t.ReviewRating, t.Subscription,
			t.ShippingType, t.DiscountApplied, t.PromoCodeUsed, t.PreviousPurchases,
			t.PaymentMethod, t.Frequency)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		s.table, strings.Join(sqlColumns, ", "), strings.Join(valueStrings, ","))

	_, err := ex.ExecContext(ctx, query, valueArgs...)
	return err
}

// Load reads every stored transaction back in insertion order. Rows come back
// as raw cells so they pass through the same Cleaner as file sources.
func (s *SQLStore) Load(ctx context.Context) ([]models.RawTransaction, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(sqlColumns, ", "), s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch all: %w", s.dialect, err)
	}
	defer rows.Close()

	var out []models.RawTransaction
	line := 1
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.CustomerID, &t.Age, &t.Gender, &t.Item, &t.Category, &t.PurchaseAmount,
			&t.Location, &t.Size, &t.Color, &t.Season, &t.ReviewRating, &t.Subscription,
			&t.ShippingType, &t.DiscountApplied, &t.PromoCodeUsed, &t.PreviousPurchases,
			&t.PaymentMethod, &t.Frequency,
		); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", s.dialect, err)
		}
		line++
		out = append(out, toRaw(&t, line))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: fetch all: %w", s.dialect, err)
	}
	return out, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func toRaw(t *models.Transaction, line int) models.RawTransaction {
	rec := record(t)
	cells := make(map[string]string, len(rec))
	for i, col := range models.Columns {
		cells[col] = rec[i]
	}
	return models.RawTransaction{Cells: cells, Line: line}
}

// defaultRetry is used by Open when the caller supplies no retry policy.
func defaultRetry(attempts int, logger *utils.Logger) *utils.RetryConfig {
	return &utils.RetryConfig{MaxAttempts: attempts, BaseDelay: 2 * time.Second, Logger: logger}
}
