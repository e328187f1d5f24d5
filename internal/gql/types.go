package gql

import (
	"errors"
	"fmt"
	"math"

	"github.com/dfryer1193/photogram/images/application"
	imagedomain "github.com/dfryer1193/photogram/images/domain"
	notifdomain "github.com/dfryer1193/photogram/notifications/domain"
	userdomain "github.com/dfryer1193/photogram/users/domain"
	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"
)

// errIntRange is returned for values GraphQL's 32-bit Int cannot carry
var errIntRange = errors.New("value outside GraphQL Int range")

func toInt(v int64) (int32, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%d: %w", v, errIntRange)
	}
	return int32(v), nil
}

type resultResolver struct {
	res application.Result
}

func (r *resultResolver) Ok() bool {
	return r.res.OK
}

func (r *resultResolver) Error() *string {
	if r.res.OK || r.res.Error == "" {
		return nil
	}
	msg := r.res.Error
	return &msg
}

type imageResultResolver struct {
	resultResolver
	img *imagedomain.Image
}

func (r *imageResultResolver) Image() *imageResolver {
	if r.img == nil {
		return nil
	}
	return &imageResolver{img: r.img}
}

type commentResultResolver struct {
	resultResolver
	comment  *imagedomain.Comment
	renderer application.CommentRenderer
}

func (r *commentResultResolver) Comment() *commentResolver {
	if r.comment == nil {
		return nil
	}
	return &commentResolver{c: r.comment, renderer: r.renderer}
}

type imageResolver struct {
	img *imagedomain.Image
}

func (r *imageResolver) ID() (int32, error)           { return toInt(r.img.ID) }
func (r *imageResolver) File() string                 { return r.img.File }
func (r *imageResolver) Caption() string              { return r.img.Caption }
func (r *imageResolver) Location() string             { return r.img.Location }
func (r *imageResolver) CreatorID() (int32, error)    { return toInt(r.img.CreatorID) }
func (r *imageResolver) LikeCount() (int32, error)    { return toInt(int64(r.img.LikeCount)) }
func (r *imageResolver) CommentCount() (int32, error) { return toInt(int64(r.img.CommentCount)) }

func (r *imageResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.img.CreatedAt}
}

func (r *imageResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.img.UpdatedAt}
}

type commentResolver struct {
	c        *imagedomain.Comment
	renderer application.CommentRenderer
}

func (r *commentResolver) ID() (int32, error)        { return toInt(r.c.ID) }
func (r *commentResolver) Message() string           { return r.c.Message }
func (r *commentResolver) ImageID() (int32, error)   { return toInt(r.c.ImageID) }
func (r *commentResolver) CreatorID() (int32, error) { return toInt(r.c.CreatorID) }

func (r *commentResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.c.CreatedAt}
}

// MessageHTML falls back to an empty string when rendering fails; the raw
// message is always available alongside it.
func (r *commentResolver) MessageHTML() string {
	if r.renderer == nil {
		return ""
	}
	html, err := r.renderer.Render(r.c.Message)
	if err != nil {
		log.Warn().Err(err).Int64("commentID", r.c.ID).Msg("Failed to render comment")
		return ""
	}
	return html
}

type userResolver struct {
	user *userdomain.User
}

func (r *userResolver) ID() (int32, error) { return toInt(r.user.ID) }
func (r *userResolver) Username() string   { return r.user.Username }

type notificationResolver struct {
	n *notifdomain.Notification
}

func (r *notificationResolver) ID() (int32, error)      { return toInt(r.n.ID) }
func (r *notificationResolver) ActorID() (int32, error) { return toInt(r.n.ActorID) }
func (r *notificationResolver) Verb() string            { return r.n.Verb }

func (r *notificationResolver) ImageID() (*int32, error) {
	if r.n.ImageID == 0 {
		return nil, nil
	}
	id, err := toInt(r.n.ImageID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (r *notificationResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.n.CreatedAt}
}
