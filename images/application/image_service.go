package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/dfryer1193/photogram/images/domain"
	"github.com/dfryer1193/photogram/shared/auth"
	"github.com/rs/zerolog/log"
)

// Transactor runs fn inside a single store transaction
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// LikeNotifier receives like events after the like has been committed.
// Its errors are logged and never reach the caller of the mutation.
type LikeNotifier interface {
	NotifyLike(ctx context.Context, actorID, targetID, imageID int64) error
	RetractLike(ctx context.Context, actorID, targetID, imageID int64) error
}

type ImageService struct {
	tx       Transactor
	images   domain.ImageRepository
	comments domain.CommentRepository
	likes    domain.LikeRepository

	notifier     LikeNotifier
	notifyOnLike bool
}

type Option func(*ImageService)

// WithLikeNotifier attaches a notification sink. Unlikes always retract through
// it; likes only publish when notifyOnLike is set.
func WithLikeNotifier(n LikeNotifier, notifyOnLike bool) Option {
	return func(s *ImageService) {
		s.notifier = n
		s.notifyOnLike = notifyOnLike
	}
}

func NewImageService(
	tx Transactor,
	images domain.ImageRepository,
	comments domain.CommentRepository,
	likes domain.LikeRepository,
	opts ...Option,
) *ImageService {
	s := &ImageService{
		tx:       tx,
		images:   images,
		comments: comments,
		likes:    likes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetImage returns the image with its counters, or domain.ErrNotFound
func (s *ImageService) GetImage(ctx context.Context, imageID int64) (*domain.Image, error) {
	return s.images.GetByID(ctx, imageID)
}

// lookupImage maps a missing image to a failed Result. A nil image with a nil
// error means the caller should return res.
func (s *ImageService) lookupImage(ctx context.Context, imageID int64) (*domain.Image, Result, error) {
	img, err := s.images.GetByID(ctx, imageID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fail(MsgImageNotFound), nil
	}
	if err != nil {
		return nil, Result{}, err
	}
	return img, succeed(), nil
}

// LikeImage records that the caller likes imageID
func (s *ImageService) LikeImage(ctx context.Context, caller auth.Caller, imageID int64) (Result, error) {
	if !caller.IsAuthenticated() {
		return fail(MsgLogIn), nil
	}

	var (
		res   Result
		image *domain.Image
	)
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		image, res, err = s.lookupImage(ctx, imageID)
		if err != nil || image == nil {
			return err
		}

		err = s.likes.Create(ctx, &domain.Like{CreatorID: caller.UserID, ImageID: image.ID})
		if errors.Is(err, domain.ErrConflict) {
			log.Warn().Err(err).Int64("userID", caller.UserID).Int64("imageID", imageID).Msg("Failed to like image")
			res = fail(MsgCantLikeImage)
			return nil
		}
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("like image %d: %w", imageID, err)
	}

	if res.OK && s.notifyOnLike && s.notifier != nil {
		if err := s.notifier.NotifyLike(ctx, caller.UserID, image.CreatorID, image.ID); err != nil {
			log.Error().Err(err).Int64("userID", caller.UserID).Int64("imageID", imageID).Msg("Failed to record like notification")
		}
	}

	return res, nil
}

// UnlikeImage removes the caller's like. Unliking an image that was never
// liked succeeds without changes.
func (s *ImageService) UnlikeImage(ctx context.Context, caller auth.Caller, imageID int64) (Result, error) {
	if !caller.IsAuthenticated() {
		return fail(MsgLogIn), nil
	}

	var (
		res   Result
		image *domain.Image
	)
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		image, res, err = s.lookupImage(ctx, imageID)
		if err != nil || image == nil {
			return err
		}

		like, err := s.likes.Get(ctx, caller.UserID, image.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		err = s.likes.Delete(ctx, like.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("unlike image %d: %w", imageID, err)
	}

	if res.OK && s.notifier != nil {
		if err := s.notifier.RetractLike(ctx, caller.UserID, image.CreatorID, image.ID); err != nil {
			log.Error().Err(err).Int64("userID", caller.UserID).Int64("imageID", imageID).Msg("Failed to remove like notification")
		}
	}

	return res, nil
}

// AddComment posts message on imageID as the caller
func (s *ImageService) AddComment(ctx context.Context, caller auth.Caller, imageID int64, message string) (CommentResult, error) {
	if !caller.IsAuthenticated() {
		return CommentResult{Result: fail(MsgLogIn)}, nil
	}

	var out CommentResult
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		image, res, err := s.lookupImage(ctx, imageID)
		out.Result = res
		if err != nil || image == nil {
			return err
		}

		comment := &domain.Comment{
			Message:   message,
			ImageID:   image.ID,
			CreatorID: caller.UserID,
		}
		err = s.comments.Create(ctx, comment)
		if errors.Is(err, domain.ErrConflict) {
			log.Warn().Err(err).Int64("userID", caller.UserID).Int64("imageID", imageID).Msg("Failed to create comment")
			out.Result = fail(MsgCantCreateComment)
			return nil
		}
		if err != nil {
			return err
		}

		out.Comment = comment
		return nil
	})
	if err != nil {
		return CommentResult{}, fmt.Errorf("add comment to image %d: %w", imageID, err)
	}

	return out, nil
}

// DeleteComment removes commentID from imageID. The comment's author and the
// image's owner may both delete it.
func (s *ImageService) DeleteComment(ctx context.Context, caller auth.Caller, imageID, commentID int64) (Result, error) {
	if !caller.IsAuthenticated() {
		return fail(MsgLogIn), nil
	}

	var res Result
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		image, imgRes, err := s.lookupImage(ctx, imageID)
		res = imgRes
		if err != nil || image == nil {
			return err
		}

		comment, err := s.comments.GetByID(ctx, commentID)
		if errors.Is(err, domain.ErrNotFound) || (err == nil && comment.ImageID != image.ID) {
			res = fail(MsgCommentNotFound)
			return nil
		}
		if err != nil {
			return err
		}

		if !comment.CanBeDeletedBy(caller.UserID, image) {
			res = fail(MsgCantDeleteComment)
			return nil
		}

		err = s.comments.Delete(ctx, comment.ID)
		if errors.Is(err, domain.ErrNotFound) {
			res = fail(MsgCommentNotFound)
			return nil
		}
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("delete comment %d: %w", commentID, err)
	}

	return res, nil
}

// EditImage updates caption and location. A nil argument keeps the current value.
func (s *ImageService) EditImage(ctx context.Context, caller auth.Caller, imageID int64, caption, location *string) (ImageResult, error) {
	if !caller.IsAuthenticated() {
		return ImageResult{Result: fail(MsgLogIn)}, nil
	}

	var out ImageResult
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		image, res, err := s.lookupImage(ctx, imageID)
		out.Result = res
		if err != nil || image == nil {
			return err
		}

		if image.CreatorID != caller.UserID {
			out.Result = fail(MsgUnauthorized)
			return nil
		}

		if caption != nil {
			image.Caption = *caption
		}
		if location != nil {
			image.Location = *location
		}

		err = s.images.Update(ctx, image)
		if errors.Is(err, domain.ErrConflict) {
			log.Warn().Err(err).Int64("userID", caller.UserID).Int64("imageID", imageID).Msg("Failed to save image")
			out.Result = fail(MsgCantSaveImage)
			return nil
		}
		if err != nil {
			return err
		}

		out.Image = image
		return nil
	})
	if err != nil {
		return ImageResult{}, fmt.Errorf("edit image %d: %w", imageID, err)
	}

	return out, nil
}

// DeleteImage removes an image owned by the caller, together with its likes
// and comments. Anonymous callers get MsgUnauthorized here, not MsgLogIn.
func (s *ImageService) DeleteImage(ctx context.Context, caller auth.Caller, imageID int64) (Result, error) {
	if !caller.IsAuthenticated() {
		return fail(MsgUnauthorized), nil
	}

	var res Result
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		image, imgRes, err := s.lookupImage(ctx, imageID)
		res = imgRes
		if err != nil || image == nil {
			return err
		}

		if image.CreatorID != caller.UserID {
			res = fail(MsgUnauthorized)
			return nil
		}

		err = s.images.Delete(ctx, image.ID)
		if errors.Is(err, domain.ErrNotFound) {
			res = fail(MsgImageNotFound)
			return nil
		}
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("delete image %d: %w", imageID, err)
	}

	return res, nil
}

// UploadImage creates an image owned by the caller. An omitted location is stored empty.
func (s *ImageService) UploadImage(ctx context.Context, caller auth.Caller, fileURL, caption string, location *string) (ImageResult, error) {
	if !caller.IsAuthenticated() {
		return ImageResult{Result: fail(MsgLogIn)}, nil
	}

	image := &domain.Image{
		CreatorID: caller.UserID,
		File:      fileURL,
		Caption:   caption,
	}
	if location != nil {
		image.Location = *location
	}

	var out ImageResult
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		err := s.images.Create(ctx, image)
		if errors.Is(err, domain.ErrConflict) {
			log.Warn().Err(err).Int64("userID", caller.UserID).Msg("Failed to create image")
			out.Result = fail(MsgCantCreateImage)
			return nil
		}
		if err != nil {
			return err
		}

		out.Result = succeed()
		out.Image = image
		return nil
	})
	if err != nil {
		return ImageResult{}, fmt.Errorf("upload image: %w", err)
	}

	return out, nil
}
