package config

import (
	"log/slog"
	"testing"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_API_KEY", "test-token")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DAFI_MAIN_GROUP", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MONGO_DB", "")
}

func TestLoad_AllEnvVarsSet(t *testing.T) {
	setRequired(t)
	t.Setenv("DAFI_MAIN_GROUP", "-1001234")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TelegramToken != "test-token" {
		t.Errorf("TelegramToken = %q, want %q", cfg.TelegramToken, "test-token")
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DriverSQLite)
	}
	if cfg.DSN != "/tmp/test.db" {
		t.Errorf("DSN = %q, want %q", cfg.DSN, "/tmp/test.db")
	}
	if cfg.MainGroupID != -1001234 {
		t.Errorf("MainGroupID = %d, want %d", cfg.MainGroupID, -1001234)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
	if cfg.MongoDB != "dafibot" {
		t.Errorf("MongoDB = %q, want default", cfg.MongoDB)
	}
}

func TestLoad_MainGroupOptional(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MainGroupID != 0 {
		t.Errorf("MainGroupID = %d, want 0 when unset", cfg.MainGroupID)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_BOT_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestLoad_MissingDBPath(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PATH", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing DB_PATH")
	}
}

func TestLoad_Postgres(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/dafi?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN != "postgres://localhost/dafi?sslmode=disable" {
		t.Errorf("DSN = %q", cfg.DSN)
	}

	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"non-numeric main group", "DAFI_MAIN_GROUP", "dafi"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
