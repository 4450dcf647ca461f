package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Dataset sources understood by storage.Open.
const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Addr          string
	SessionSecret string

	DatasetSource string
	DatasetPath   string
	SQLTable      string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SQLitePath       string
	MaxRetries       int

	TopN       int
	SampleSize int

	LogLevel    string
	ChromeBin   string
	SnapshotURL string
	SnapshotOut string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		Addr:          getEnv("DASHBOARD_ADDR", ":8501"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-dashboard-secret"),

		DatasetSource: strings.ToLower(getEnv("DATASET_SOURCE", SourceCSV)),
		DatasetPath:   getEnv("DATASET_PATH", "./data/shopping_trends.csv"),
		SQLTable:      getEnv("SQL_TABLE", "transactions"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "dashboard"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "dashboard123"),
		PostgresDB:       getEnv("POSTGRES_DB", "shopping_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getEnv("SQLITE_PATH", "./data/shopping.db"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 5),

		TopN:       getEnvInt("TOP_N", 10),
		SampleSize: getEnvInt("SAMPLE_SIZE", 500),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ChromeBin:   getEnv("CHROME_BIN", ""),
		SnapshotURL: getEnv("SNAPSHOT_URL", "http://localhost:8501/"),
		SnapshotOut: getEnv("SNAPSHOT_OUT", "./output/dashboard.png"),
	}
}

// DSN returns the connection string for the configured SQL source.
func (c *Config) DSN() string {
	return c.DSNFor(c.DatasetSource)
}

// DSNFor returns the connection string for the given SQL source. Anything
// other than sqlite is treated as postgres.
func (c *Config) DSNFor(source string) string {
	if source == SourceSQLite {
		return c.SQLitePath
	}
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
