package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dfryer1193/photogram/shared/db/sqlite"
	"github.com/dfryer1193/photogram/users/domain"
)

func setupTestRepo(t *testing.T) *SQLiteUserRepository {
	t.Helper()
	database := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err := database.Connect(); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewUserRepository(database.DB())
}

func TestUserRepository_Create(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	u, err := repo.Create(ctx, "  alice ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID == 0 {
		t.Error("ID was not assigned")
	}
	if u.Username != "alice" {
		t.Errorf("Username = %q, want %q", u.Username, "alice")
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("GetByID().Username = %q, want %q", got.Username, "alice")
	}
}

func TestUserRepository_Create_Errors(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "bob"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := repo.Create(ctx, "bob"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("duplicate Create() error = %v, want ErrUsernameTaken", err)
	}

	if _, err := repo.Create(ctx, "   "); err == nil {
		t.Error("Create() with blank username succeeded")
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	if _, err := repo.GetByID(context.Background(), 5); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("GetByID() error = %v, want ErrUserNotFound", err)
	}
}
