package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultMongoDB = "dafibot"
)

type Config struct {
	TelegramToken string
	DBDriver      string
	// DSN is the SQLite file path or the Postgres connection URL, depending on DBDriver.
	DSN string
	// MainGroupID is the admin chat receiving nomination requests. Zero means not configured.
	MainGroupID int64
	MongoURI    string
	MongoDB     string
	SentryDSN   string
	LogLevel    slog.Level
}

// Load reads the configuration from the environment. Values from a .env file
// in the working directory are loaded first if the file exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_API_KEY")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_API_KEY is required")
	}

	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = DriverSQLite
	}

	var dsn string
	switch driver {
	case DriverSQLite:
		dsn = os.Getenv("DB_PATH")
		if dsn == "" {
			return nil, fmt.Errorf("DB_PATH is required")
		}
	case DriverPostgres:
		dsn = os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, driver)
	}

	var mainGroupID int64
	if s := os.Getenv("DAFI_MAIN_GROUP"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DAFI_MAIN_GROUP must be a number: %w", err)
		}
		mainGroupID = id
	}

	level, err := ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = defaultMongoDB
	}

	return &Config{
		TelegramToken: token,
		DBDriver:      driver,
		DSN:           dsn,
		MainGroupID:   mainGroupID,
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       mongoDB,
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		LogLevel:      level,
	}, nil
}

// ParseLevel parses a slog level name. Empty input means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
