package persistence

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dfryer1193/photogram/images/domain"
	"github.com/dfryer1193/photogram/shared/db/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err := database.Connect(); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.DB().Exec("INSERT INTO users (id, username) VALUES (1, 'alice'), (2, 'bob')"); err != nil {
		t.Fatalf("Failed to seed users: %v", err)
	}
	return database.DB()
}

func createTestImage(t *testing.T, repo *SQLiteImageRepository, creatorID int64) *domain.Image {
	t.Helper()
	img := &domain.Image{
		CreatorID: creatorID,
		File:      "https://cdn.example/photo.jpg",
		Caption:   "harbour",
		Location:  "Porto",
	}
	if err := repo.Create(context.Background(), img); err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	return img
}

func TestImageRepository_CreateAndGet(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewImageRepository(conn)
	ctx := context.Background()

	img := createTestImage(t, repo, 1)
	if img.ID == 0 {
		t.Fatal("ID was not assigned")
	}
	if img.CreatedAt.IsZero() || img.UpdatedAt.IsZero() {
		t.Error("timestamps were not set")
	}

	got, err := repo.GetByID(ctx, img.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Caption != "harbour" || got.Location != "Porto" || got.CreatorID != 1 {
		t.Errorf("GetByID() = %+v", got)
	}
	if got.LikeCount != 0 || got.CommentCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", got.LikeCount, got.CommentCount)
	}
}

func TestImageRepository_GetByID_NotFound(t *testing.T) {
	repo := NewImageRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestImageRepository_Create_UnknownCreator(t *testing.T) {
	repo := NewImageRepository(setupTestDB(t))

	err := repo.Create(context.Background(), &domain.Image{CreatorID: 99, File: "f", Caption: "c"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

func TestImageRepository_Update(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewImageRepository(conn)
	ctx := context.Background()

	img := createTestImage(t, repo, 1)
	img.Caption = "harbour at night"
	img.Location = ""
	if err := repo.Update(ctx, img); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, img.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Caption != "harbour at night" {
		t.Errorf("Caption = %q, want %q", got.Caption, "harbour at night")
	}
	if got.Location != "" {
		t.Errorf("Location = %q, want empty", got.Location)
	}

	missing := &domain.Image{ID: 1000, Caption: "x"}
	if err := repo.Update(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() on missing image error = %v, want ErrNotFound", err)
	}
}

func TestImageRepository_DeleteCascades(t *testing.T) {
	conn := setupTestDB(t)
	images := NewImageRepository(conn)
	likes := NewLikeRepository(conn)
	comments := NewCommentRepository(conn)
	ctx := context.Background()

	img := createTestImage(t, images, 1)
	if err := likes.Create(ctx, &domain.Like{CreatorID: 2, ImageID: img.ID}); err != nil {
		t.Fatalf("Failed to like: %v", err)
	}
	if err := comments.Create(ctx, &domain.Comment{CreatorID: 2, ImageID: img.ID, Message: "nice"}); err != nil {
		t.Fatalf("Failed to comment: %v", err)
	}

	got, err := images.GetByID(ctx, img.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.LikeCount != 1 || got.CommentCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", got.LikeCount, got.CommentCount)
	}

	if err := images.Delete(ctx, img.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var remaining int
	if err := conn.QueryRow("SELECT (SELECT COUNT(*) FROM likes) + (SELECT COUNT(*) FROM comments)").Scan(&remaining); err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if remaining != 0 {
		t.Errorf("%d likes/comments survived image delete", remaining)
	}

	if err := images.Delete(ctx, img.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestLikeRepository(t *testing.T) {
	conn := setupTestDB(t)
	img := createTestImage(t, NewImageRepository(conn), 1)
	repo := NewLikeRepository(conn)
	ctx := context.Background()

	if _, err := repo.Get(ctx, 2, img.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() before like error = %v, want ErrNotFound", err)
	}

	like := &domain.Like{CreatorID: 2, ImageID: img.ID}
	if err := repo.Create(ctx, like); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Create(ctx, &domain.Like{CreatorID: 2, ImageID: img.ID}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate Create() error = %v, want ErrConflict", err)
	}

	got, err := repo.Get(ctx, 2, img.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != like.ID {
		t.Errorf("Get().ID = %d, want %d", got.ID, like.ID)
	}

	withCount, err := NewImageRepository(conn).GetByID(ctx, img.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if withCount.LikeCount != 1 {
		t.Errorf("LikeCount = %d, want 1", withCount.LikeCount)
	}

	if err := repo.Delete(ctx, like.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, like.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestCommentRepository(t *testing.T) {
	conn := setupTestDB(t)
	img := createTestImage(t, NewImageRepository(conn), 1)
	repo := NewCommentRepository(conn)
	ctx := context.Background()

	c := &domain.Comment{CreatorID: 2, ImageID: img.ID, Message: "lovely light"}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Message != "lovely light" || got.ImageID != img.ID || got.CreatorID != 2 {
		t.Errorf("GetByID() = %+v", got)
	}

	if err := repo.Create(ctx, &domain.Comment{CreatorID: 2, ImageID: 777, Message: "orphan"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create() on missing image error = %v, want ErrConflict", err)
	}

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}
