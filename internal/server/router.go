package server

import (
	"database/sql"

	imageapp "github.com/dfryer1193/photogram/images/application"
	imagepersistence "github.com/dfryer1193/photogram/images/persistence"
	"github.com/dfryer1193/photogram/internal/gql"
	"github.com/dfryer1193/photogram/internal/middleware"
	"github.com/dfryer1193/photogram/internal/rest"
	notifapp "github.com/dfryer1193/photogram/notifications/application"
	notifpersistence "github.com/dfryer1193/photogram/notifications/persistence"
	"github.com/dfryer1193/photogram/shared/db"
	userpersistence "github.com/dfryer1193/photogram/users/persistence"
	"github.com/gin-gonic/gin"
)

type Options struct {
	NotifyOnLike bool
}

// NewRouter wires repositories, services and the GraphQL schema over conn
// and returns the HTTP handler serving them.
func NewRouter(conn *sql.DB, store rest.Pinger, tokens middleware.TokenVerifier, opts Options) *gin.Engine {
	sink := notifapp.NewSink(notifpersistence.NewNotificationRepository(conn))

	images := imageapp.NewImageService(
		db.NewTransactor(conn),
		imagepersistence.NewImageRepository(conn),
		imagepersistence.NewCommentRepository(conn),
		imagepersistence.NewLikeRepository(conn),
		imageapp.WithLikeNotifier(sink, opts.NotifyOnLike),
	)

	resolver := gql.NewResolver(
		images,
		userpersistence.NewUserRepository(conn),
		sink,
		imageapp.NewCommentRenderer(),
	)

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(middleware.CORS())
	router.Use(middleware.Authenticate(tokens))

	rest.NewApi(router, gql.NewSchema(resolver), store)
	return router
}
