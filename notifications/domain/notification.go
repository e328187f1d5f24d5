package domain

import (
	"context"
	"time"
)

// VerbLike is recorded when a user likes someone's image
const VerbLike = "like"

// Notification tells Target that Actor did Verb, optionally about an image.
// Notifications are side records: losing one never fails the action that caused it.
type Notification struct {
	ID        int64
	ActorID   int64
	TargetID  int64
	Verb      string
	ImageID   int64
	CreatedAt time.Time
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error

	// Find returns the oldest notification matching actor, target, verb and image,
	// or (nil, nil) when there is none.
	Find(ctx context.Context, actorID, targetID int64, verb string, imageID int64) (*Notification, error)

	Delete(ctx context.Context, id int64) error
	ListForTarget(ctx context.Context, targetID int64, limit int) ([]*Notification, error)
}
