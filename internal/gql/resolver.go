package gql

import (
	"context"
	"errors"

	"github.com/dfryer1193/photogram/images/application"
	imagedomain "github.com/dfryer1193/photogram/images/domain"
	notifdomain "github.com/dfryer1193/photogram/notifications/domain"
	"github.com/dfryer1193/photogram/shared/auth"
	userdomain "github.com/dfryer1193/photogram/users/domain"
	"github.com/rs/zerolog/log"
)

const defaultNotificationLimit = 20

// NotificationReader lists a user's newest notifications
type NotificationReader interface {
	Recent(ctx context.Context, userID int64, limit int) ([]*notifdomain.Notification, error)
}

// Resolver is the root of the GraphQL schema. It holds no per-request state;
// the caller is read from the request context on every field.
type Resolver struct {
	images        *application.ImageService
	users         userdomain.UserRepository
	notifications NotificationReader
	renderer      application.CommentRenderer
}

func NewResolver(
	images *application.ImageService,
	users userdomain.UserRepository,
	notifications NotificationReader,
	renderer application.CommentRenderer,
) *Resolver {
	return &Resolver{
		images:        images,
		users:         users,
		notifications: notifications,
		renderer:      renderer,
	}
}

func logFailure(err error, field string) error {
	log.Error().Err(err).Str("field", field).Msg("GraphQL field failed")
	return err
}

// Queries

func (r *Resolver) Image(ctx context.Context, args struct{ ImageID int32 }) (*imageResolver, error) {
	img, err := r.images.GetImage(ctx, int64(args.ImageID))
	if errors.Is(err, imagedomain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, logFailure(err, "image")
	}
	return &imageResolver{img: img}, nil
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	caller := auth.CallerFrom(ctx)
	if !caller.IsAuthenticated() {
		return nil, nil
	}

	u, err := r.users.GetByID(ctx, caller.UserID)
	if errors.Is(err, userdomain.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, logFailure(err, "me")
	}
	return &userResolver{user: u}, nil
}

func (r *Resolver) Notifications(ctx context.Context, args struct{ Limit *int32 }) ([]*notificationResolver, error) {
	caller := auth.CallerFrom(ctx)
	if !caller.IsAuthenticated() {
		return []*notificationResolver{}, nil
	}

	limit := defaultNotificationLimit
	if args.Limit != nil && *args.Limit > 0 {
		limit = int(*args.Limit)
	}

	items, err := r.notifications.Recent(ctx, caller.UserID, limit)
	if err != nil {
		return nil, logFailure(err, "notifications")
	}

	out := make([]*notificationResolver, 0, len(items))
	for _, n := range items {
		out = append(out, &notificationResolver{n: n})
	}
	return out, nil
}

// Mutations

func (r *Resolver) LikeImage(ctx context.Context, args struct{ ImageID int32 }) (*resultResolver, error) {
	res, err := r.images.LikeImage(ctx, auth.CallerFrom(ctx), int64(args.ImageID))
	if err != nil {
		return nil, logFailure(err, "likeImage")
	}
	return &resultResolver{res: res}, nil
}

func (r *Resolver) UnlikeImage(ctx context.Context, args struct{ ImageID int32 }) (*resultResolver, error) {
	res, err := r.images.UnlikeImage(ctx, auth.CallerFrom(ctx), int64(args.ImageID))
	if err != nil {
		return nil, logFailure(err, "unlikeImage")
	}
	return &resultResolver{res: res}, nil
}

type addCommentArgs struct {
	ImageID int32
	Message string
}

func (r *Resolver) AddComment(ctx context.Context, args addCommentArgs) (*commentResultResolver, error) {
	res, err := r.images.AddComment(ctx, auth.CallerFrom(ctx), int64(args.ImageID), args.Message)
	if err != nil {
		return nil, logFailure(err, "addComment")
	}
	return &commentResultResolver{resultResolver: resultResolver{res: res.Result}, comment: res.Comment, renderer: r.renderer}, nil
}

type deleteCommentArgs struct {
	ImageID   int32
	CommentID int32
}

func (r *Resolver) DeleteComment(ctx context.Context, args deleteCommentArgs) (*resultResolver, error) {
	res, err := r.images.DeleteComment(ctx, auth.CallerFrom(ctx), int64(args.ImageID), int64(args.CommentID))
	if err != nil {
		return nil, logFailure(err, "deleteComment")
	}
	return &resultResolver{res: res}, nil
}

type editImageArgs struct {
	ImageID  int32
	Caption  *string
	Location *string
}

func (r *Resolver) EditImage(ctx context.Context, args editImageArgs) (*imageResultResolver, error) {
	res, err := r.images.EditImage(ctx, auth.CallerFrom(ctx), int64(args.ImageID), args.Caption, args.Location)
	if err != nil {
		return nil, logFailure(err, "editImage")
	}
	return &imageResultResolver{resultResolver: resultResolver{res: res.Result}, img: res.Image}, nil
}

func (r *Resolver) DeleteImage(ctx context.Context, args struct{ ImageID int32 }) (*resultResolver, error) {
	res, err := r.images.DeleteImage(ctx, auth.CallerFrom(ctx), int64(args.ImageID))
	if err != nil {
		return nil, logFailure(err, "deleteImage")
	}
	return &resultResolver{res: res}, nil
}

type uploadImageArgs struct {
	FileURL  string
	Caption  string
	Location *string
}

func (r *Resolver) UploadImage(ctx context.Context, args uploadImageArgs) (*imageResultResolver, error) {
	res, err := r.images.UploadImage(ctx, auth.CallerFrom(ctx), args.FileURL, args.Caption, args.Location)
	if err != nil {
		return nil, logFailure(err, "uploadImage")
	}
	return &imageResultResolver{resultResolver: resultResolver{res: res.Result}, img: res.Image}, nil
}
