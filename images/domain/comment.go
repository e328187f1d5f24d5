package domain

import (
	"context"
	"time"
)

type Comment struct {
	ID        int64
	Message   string
	ImageID   int64
	CreatorID int64
	CreatedAt time.Time
}

// CanBeDeletedBy reports whether userID may delete the comment on image
func (c *Comment) CanBeDeletedBy(userID int64, image *Image) bool {
	return c.CreatorID == userID || image.CreatorID == userID
}

type CommentRepository interface {
	GetByID(ctx context.Context, id int64) (*Comment, error)
	Create(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id int64) error
}
