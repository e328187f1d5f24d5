package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/photogram/images/domain"
	"github.com/dfryer1193/photogram/shared/db"
)

var _ domain.ImageRepository = (*SQLiteImageRepository)(nil)

// SQLiteImageRepository implements domain.ImageRepository using SQL database (SQLite)
type SQLiteImageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new SQLiteImageRepository from a standard sql.DB
func NewImageRepository(sqlDB *sql.DB) *SQLiteImageRepository {
	return &SQLiteImageRepository{
		db: sqlDB,
	}
}

const getImageQuery = `
	SELECT
		i.id, i.creator_id, i.file, i.caption, i.location, i.created_at, i.updated_at,
		(SELECT COUNT(*) FROM likes l WHERE l.image_id = i.id),
		(SELECT COUNT(*) FROM comments c WHERE c.image_id = i.id)
	FROM images i
	WHERE i.id = ?
`

// GetByID retrieves a single image with its like and comment counts
func (r *SQLiteImageRepository) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	var row imageRow
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getImageQuery, id).Scan(
		&row.ID,
		&row.CreatorID,
		&row.File,
		&row.Caption,
		&row.Location,
		&row.CreatedAt,
		&row.UpdatedAt,
		&row.LikeCount,
		&row.CommentCount,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("image %d: %w", id, domain.ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return row.toDomain(), nil
}

const insertImageQuery = `
	INSERT INTO images (creator_id, file, caption, location, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
`

// Create inserts a new image owned by img.CreatorID
func (r *SQLiteImageRepository) Create(ctx context.Context, img *domain.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	now := time.Now().UTC()
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, insertImageQuery,
		img.CreatorID,
		img.File,
		img.Caption,
		img.Location,
		now,
		now,
	)
	if err != nil {
		return wrapWriteError("failed to insert image", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read image id: %w", err)
	}

	img.ID = id
	img.CreatedAt = now
	img.UpdatedAt = now
	img.LikeCount = 0
	img.CommentCount = 0
	return nil
}

const updateImageQuery = `
	UPDATE images
	SET caption = ?, location = ?, updated_at = ?
	WHERE id = ?
`

// Update saves the image's caption and location
func (r *SQLiteImageRepository) Update(ctx context.Context, img *domain.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	now := time.Now().UTC()
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, updateImageQuery,
		img.Caption,
		img.Location,
		now,
		img.ID,
	)
	if err != nil {
		return wrapWriteError("failed to update image", err)
	}

	if err := requireAffected(res, "image", img.ID); err != nil {
		return err
	}

	img.UpdatedAt = now
	return nil
}

const deleteImageQuery = `
	DELETE FROM images WHERE id = ?
`

// Delete removes an image; likes, comments and notifications go with it
func (r *SQLiteImageRepository) Delete(ctx context.Context, id int64) error {
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, deleteImageQuery, id)
	if err != nil {
		return wrapWriteError("failed to delete image", err)
	}

	return requireAffected(res, "image", id)
}

// imageRow is a private struct used to scan database rows
type imageRow struct {
	ID           int64        `db:"id"`
	CreatorID    int64        `db:"creator_id"`
	File         string       `db:"file"`
	Caption      string       `db:"caption"`
	Location     string       `db:"location"`
	CreatedAt    sql.NullTime `db:"created_at"`
	UpdatedAt    sql.NullTime `db:"updated_at"`
	LikeCount    int
	CommentCount int
}

// toDomain converts an imageRow to a domain.Image, handling nullable times
func (ir *imageRow) toDomain() *domain.Image {
	img := &domain.Image{
		ID:           ir.ID,
		CreatorID:    ir.CreatorID,
		File:         ir.File,
		Caption:      ir.Caption,
		Location:     ir.Location,
		LikeCount:    ir.LikeCount,
		CommentCount: ir.CommentCount,
	}

	if ir.CreatedAt.Valid {
		img.CreatedAt = ir.CreatedAt.Time
	}
	if ir.UpdatedAt.Valid {
		img.UpdatedAt = ir.UpdatedAt.Time
	}

	return img
}
