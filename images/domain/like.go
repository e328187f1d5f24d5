package domain

import (
	"context"
	"time"
)

// Like marks an image as liked by a user; at most one exists per (creator, image)
type Like struct {
	ID        int64
	CreatorID int64
	ImageID   int64
	CreatedAt time.Time
}

type LikeRepository interface {
	// Create returns ErrConflict when the pair is already liked
	Create(ctx context.Context, l *Like) error

	// Get returns ErrNotFound when the pair has no like
	Get(ctx context.Context, creatorID, imageID int64) (*Like, error)

	Delete(ctx context.Context, id int64) error
}
