package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewSQLiteDB(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     string
	}{
		{
			name:     "env variable",
			envValue: "/tmp/env.db",
			want:     "/tmp/env.db",
		},
		{
			name: "default path",
			want: "./photogram.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("SQLITE_DB_PATH", tt.envValue)
			} else {
				os.Unsetenv("SQLITE_DB_PATH")
			}

			database := NewSQLiteDB(NewSQLiteConfig())

			if database.dbPath != tt.want {
				t.Errorf("dbPath = %v, want %v", database.dbPath, tt.want)
			}
		})
	}
}

func TestSQLiteDB_DSNCarriesPragmas(t *testing.T) {
	database := NewSQLiteDB(&SQLiteConfig{Path: "/tmp/test.db"})

	dsn := database.dsn()
	if !strings.HasPrefix(dsn, "file:/tmp/test.db?") {
		t.Errorf("dsn = %q, want file URI for /tmp/test.db", dsn)
	}
	if !strings.Contains(dsn, "foreign_keys%281%29") {
		t.Errorf("dsn = %q, want foreign_keys pragma", dsn)
	}
	if !strings.Contains(dsn, "_txlock=immediate") {
		t.Errorf("dsn = %q, want immediate transactions", dsn)
	}
}

func TestSQLiteDB_Connect(t *testing.T) {
	database := NewSQLiteDB(&SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})

	err := database.Connect()
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	if database.DB() == nil {
		t.Error("DB() returned nil after Connect()")
	}

	if err := database.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	err = database.Connect()
	if err == nil {
		t.Error("Connect() should return error when already connected")
	}
}

func TestSQLiteDB_Close(t *testing.T) {
	database := NewSQLiteDB(&SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})

	// Close without connecting should not error
	if err := database.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := database.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if database.DB() != nil {
		t.Error("DB() should return nil after Close()")
	}

	if err := database.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail after Close()")
	}
}

func TestSQLiteDB_ForeignKeysEnforcedOnEveryConnection(t *testing.T) {
	database := NewSQLiteDB(&SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	sqlDB := database.DB()
	sqlDB.SetMaxIdleConns(4)

	ctx := context.Background()
	conns := make([]interface{ Close() error }, 0, 3)
	for i := 0; i < 3; i++ {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			t.Fatalf("Conn() error = %v", err)
		}
		conns = append(conns, conn)

		var enabled int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("Failed to read pragma: %v", err)
		}
		if enabled != 1 {
			t.Errorf("connection %d: foreign_keys = %d, want 1", i, enabled)
		}
	}

	for _, c := range conns {
		c.Close()
	}
}
