package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shopping-dashboard/config"
	"shopping-dashboard/models"
	"shopping-dashboard/utils"
)

const sampleCSV = "\ufeffCustomer ID,Age,Gender,Item Purchased,Category,Purchase Amount (USD),Season,Shipping Type\n" +
	"1,55,Male,Blouse,Clothing,53,Winter,Express\n" +
	"2,19,Male,Sweater,Clothing,64,Winter\n" +
	",,,,,,,\n" +
	"3,50,Female,Jeans,Clothing,73,Spring,Free Shipping\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func sampleRows() []models.Transaction {
	return []models.Transaction{
		{CustomerID: 1, Age: 55, Gender: "Male", Item: "Blouse", Category: "Clothing", PurchaseAmount: 53, Season: "Winter", ReviewRating: 3.1, ShippingType: "Express"},
		{CustomerID: 2, Age: 19, Gender: "Male", Item: "Sweater", Category: "Clothing", PurchaseAmount: 64.5, Season: "Winter", PaymentMethod: "Cash"},
	}
}

func TestCSVReaderMapsHeaders(t *testing.T) {
	path := writeFile(t, "shop.csv", sampleCSV)

	rows, err := NewCSVReader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3, "blank rows are skipped")

	assert.Equal(t, "1", rows[0].Get(models.ColCustomerID), "BOM stripped from first header")
	assert.Equal(t, "Blouse", rows[0].Get(models.ColItem))
	assert.Equal(t, "", rows[1].Get(models.ColShippingType), "short rows padded")
	assert.Equal(t, 5, rows[2].Line)
	assert.Equal(t, "", rows[0].Get(models.ColColor), "absent column reads empty")
}

func TestCSVReaderMissingColumn(t *testing.T) {
	path := writeFile(t, "bad.csv", "Customer ID,Age,Gender\n1,20,Male\n")

	_, err := NewCSVReader(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), models.ColItem)
}

func TestCSVReaderMissingFile(t *testing.T) {
	_, err := NewCSVReader(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	assert.Error(t, err)
}

func TestCSVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "export.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), sampleRows()))
	require.NoError(t, w.Close())

	rows, err := NewCSVReader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "64.5", rows[1].Get(models.ColPurchaseAmount))
	assert.Equal(t, "Cash", rows[1].Get(models.ColPaymentMethod))
	assert.Equal(t, "3.1", rows[0].Get(models.ColReviewRating))
}

func TestXLSXReader(t *testing.T) {
	f := excelize.NewFile()
	header := []interface{}{"Customer ID", "Age", "Gender", "Item Purchased", "Category", "Purchase Amount (USD)", "Season"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	row := []interface{}{7, 33, "Female", "Boots", "Footwear", 81, "Fall"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))

	path := filepath.Join(t.TempDir(), "shop.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := NewXLSXReader(path, "").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Boots", rows[0].Get(models.ColItem))
	assert.Equal(t, "81", rows[0].Get(models.ColPurchaseAmount))
	assert.Equal(t, "Fall", rows[0].Get(models.ColSeason))
}

func TestSQLStoreRejectsBadTable(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLStore(db, DialectPostgres, "x; DROP TABLE y")
	assert.Error(t, err)

	_, err = NewSQLStore(db, Dialect("oracle"), "transactions")
	assert.True(t, errors.Is(err, ErrUnknownSource))
}

func TestSQLStoreMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, DialectPostgres, "transactions")
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS transactions").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_transactions_category").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_transactions_season").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreWriteBatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, DialectPostgres, "transactions")
	require.NoError(t, err)

	rows := make([]models.Transaction, batchSize+10)
	for i := range rows {
		rows[i] = sampleRows()[i%2]
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM transactions").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions (customer_id, age")+".*"+regexp.QuoteMeta("($1,$2,$3")).
		WillReturnResult(sqlmock.NewResult(0, batchSize))
	mock.ExpectExec("INSERT INTO transactions").WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectCommit()

	require.NoError(t, store.Write(context.Background(), rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreWriteEmptyIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, DialectSQLite, "transactions")
	require.NoError(t, err)
	require.NoError(t, store.Write(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreWriteError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, DialectSQLite, "transactions")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM transactions").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("VALUES (?,?,?")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = store.Write(context.Background(), sampleRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLStore(db, DialectPostgres, "transactions")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM transactions ORDER BY id").WillReturnRows(
		sqlmock.NewRows(sqlColumns).
			AddRow(int64(7), 30.0, "Male", "Coat", "Outerwear", 120.5, "Ohio", "M", "Gray", "Winter",
				4.5, "Yes", "Express", "No", "No", 12.0, "Venmo", "Weekly"))

	rows, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0].Get(models.ColCustomerID))
	assert.Equal(t, "30", rows[0].Get(models.ColAge))
	assert.Equal(t, "120.5", rows[0].Get(models.ColPurchaseAmount))
	assert.Equal(t, "Weekly", rows[0].Get(models.ColFrequency))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shop.db")

	store, err := OpenSQLStore(ctx, DialectSQLite, path, "transactions", &utils.RetryConfig{MaxAttempts: 1})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Write(ctx, sampleRows()))
	// A second write replaces rather than appends.
	require.NoError(t, store.Write(ctx, sampleRows()))

	rows, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Sweater", rows[1].Get(models.ColItem))
	assert.Equal(t, "64.5", rows[1].Get(models.ColPurchaseAmount))
}

func TestSQLiteFailedWriteKeepsPreviousRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shop.db")

	store, err := OpenSQLStore(ctx, DialectSQLite, path, "transactions", &utils.RetryConfig{MaxAttempts: 1})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Write(ctx, sampleRows()))

	_, err = store.db.ExecContext(ctx, `CREATE TRIGGER reject_bad BEFORE INSERT ON transactions
		WHEN NEW.item_purchased = 'Bad'
		BEGIN SELECT RAISE(ABORT, 'bad row'); END`)
	require.NoError(t, err)

	rows := make([]models.Transaction, batchSize+10)
	for i := range rows {
		rows[i] = sampleRows()[0]
	}
	rows[55].Item = "Bad"

	err = store.Write(ctx, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert rows 50-59")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Sweater", loaded[1].Get(models.ColItem))
}

func TestOpenSelectsLoader(t *testing.T) {
	logger := utils.NewWriterLogger(io.Discard, utils.LevelError)

	cfg := &config.Config{DatasetSource: config.SourceCSV, DatasetPath: "x.csv"}
	l, err := Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &CSVReader{}, l)

	cfg.DatasetSource = config.SourceXLSX
	l, err = Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &XLSXReader{}, l)

	cfg.DatasetSource = "parquet"
	_, err = Open(context.Background(), cfg, logger)
	assert.True(t, errors.Is(err, ErrUnknownSource))
}

func TestOpenFileByExtension(t *testing.T) {
	l, err := OpenFile("data/Shop.XLSX")
	require.NoError(t, err)
	assert.IsType(t, &XLSXReader{}, l)

	_, err = OpenFile("data/shop.json")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "shop.json"))
}
