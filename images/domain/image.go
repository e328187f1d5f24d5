package domain

import (
	"context"
	"time"
)

// Image is a photo posted by a user.
// Deleting an image removes its likes and comments with it.
type Image struct {
	ID           int64
	CreatorID    int64
	File         string
	Caption      string
	Location     string
	LikeCount    int
	CommentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ImageRepository interface {
	// GetByID returns ErrNotFound when no image has the id
	GetByID(ctx context.Context, id int64) (*Image, error)

	// Create inserts img and fills in its ID and timestamps
	Create(ctx context.Context, img *Image) error

	// Update saves caption and location
	Update(ctx context.Context, img *Image) error

	// Delete removes the image and everything it owns
	Delete(ctx context.Context, id int64) error
}
