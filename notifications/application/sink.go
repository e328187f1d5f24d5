package application

import (
	"context"
	"fmt"

	"github.com/dfryer1193/photogram/notifications/domain"
)

// Sink records like notifications. Callers treat every error as best-effort.
type Sink struct {
	repo domain.NotificationRepository
}

func NewSink(repo domain.NotificationRepository) *Sink {
	return &Sink{repo: repo}
}

// NotifyLike records that actorID liked imageID, owned by targetID
func (s *Sink) NotifyLike(ctx context.Context, actorID, targetID, imageID int64) error {
	n := &domain.Notification{
		ActorID:  actorID,
		TargetID: targetID,
		Verb:     domain.VerbLike,
		ImageID:  imageID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("notify like on image %d: %w", imageID, err)
	}
	return nil
}

// RetractLike removes the matching like notification; a missing one is not an error
func (s *Sink) RetractLike(ctx context.Context, actorID, targetID, imageID int64) error {
	n, err := s.repo.Find(ctx, actorID, targetID, domain.VerbLike, imageID)
	if err != nil {
		return fmt.Errorf("retract like on image %d: %w", imageID, err)
	}
	if n == nil {
		return nil
	}

	if err := s.repo.Delete(ctx, n.ID); err != nil {
		return fmt.Errorf("retract like on image %d: %w", imageID, err)
	}
	return nil
}

// Recent returns the newest notifications addressed to userID
func (s *Sink) Recent(ctx context.Context, userID int64, limit int) ([]*domain.Notification, error) {
	return s.repo.ListForTarget(ctx, userID, limit)
}
