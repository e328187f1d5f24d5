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

var _ domain.CommentRepository = (*SQLiteCommentRepository)(nil)

// SQLiteCommentRepository implements domain.CommentRepository using SQLite
type SQLiteCommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(sqlDB *sql.DB) *SQLiteCommentRepository {
	return &SQLiteCommentRepository{
		db: sqlDB,
	}
}

const getCommentQuery = `
	SELECT id, message, image_id, creator_id, created_at
	FROM comments
	WHERE id = ?
`

func (r *SQLiteCommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var (
		c         domain.Comment
		createdAt sql.NullTime
	)
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getCommentQuery, id).Scan(
		&c.ID,
		&c.Message,
		&c.ImageID,
		&c.CreatorID,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	return &c, nil
}

const insertCommentQuery = `
	INSERT INTO comments (message, image_id, creator_id, created_at)
	VALUES (?, ?, ?, ?)
`

// Create inserts c; a missing image or creator surfaces as domain.ErrConflict
func (r *SQLiteCommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	if c == nil {
		return fmt.Errorf("comment cannot be nil")
	}

	now := time.Now().UTC()
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, insertCommentQuery,
		c.Message,
		c.ImageID,
		c.CreatorID,
		now,
	)
	if err != nil {
		return wrapWriteError("failed to insert comment", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read comment id: %w", err)
	}

	c.ID = id
	c.CreatedAt = now
	return nil
}

const deleteCommentQuery = `
	DELETE FROM comments WHERE id = ?
`

func (r *SQLiteCommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, deleteCommentQuery, id)
	if err != nil {
		return wrapWriteError("failed to delete comment", err)
	}

	return requireAffected(res, "comment", id)
}
