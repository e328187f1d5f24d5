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

var _ domain.LikeRepository = (*SQLiteLikeRepository)(nil)

// SQLiteLikeRepository implements domain.LikeRepository using SQLite.
// Uniqueness of (creator, image) is left to the likes table's UNIQUE index.
type SQLiteLikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(sqlDB *sql.DB) *SQLiteLikeRepository {
	return &SQLiteLikeRepository{
		db: sqlDB,
	}
}

const insertLikeQuery = `
	INSERT INTO likes (creator_id, image_id, created_at)
	VALUES (?, ?, ?)
`

func (r *SQLiteLikeRepository) Create(ctx context.Context, l *domain.Like) error {
	if l == nil {
		return fmt.Errorf("like cannot be nil")
	}

	now := time.Now().UTC()
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, insertLikeQuery, l.CreatorID, l.ImageID, now)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("image %d already liked by user %d: %w", l.ImageID, l.CreatorID, domain.ErrConflict)
		}
		return wrapWriteError("failed to insert like", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read like id: %w", err)
	}

	l.ID = id
	l.CreatedAt = now
	return nil
}

const getLikeQuery = `
	SELECT id, creator_id, image_id, created_at
	FROM likes
	WHERE creator_id = ? AND image_id = ?
`

func (r *SQLiteLikeRepository) Get(ctx context.Context, creatorID, imageID int64) (*domain.Like, error) {
	var (
		l         domain.Like
		createdAt sql.NullTime
	)
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getLikeQuery, creatorID, imageID).Scan(
		&l.ID,
		&l.CreatorID,
		&l.ImageID,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("like by user %d on image %d: %w", creatorID, imageID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get like: %w", err)
	}

	if createdAt.Valid {
		l.CreatedAt = createdAt.Time
	}
	return &l, nil
}

const deleteLikeQuery = `
	DELETE FROM likes WHERE id = ?
`

func (r *SQLiteLikeRepository) Delete(ctx context.Context, id int64) error {
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, deleteLikeQuery, id)
	if err != nil {
		return wrapWriteError("failed to delete like", err)
	}

	return requireAffected(res, "like", id)
}
