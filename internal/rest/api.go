package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dfryer1193/photogram/internal/gql"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

func NewApi(router *gin.Engine, schema *graphql.Schema, store Pinger) {
	router.POST("/graphql", gql.Handler(schema))
	router.GET("/healthz", Health(store))
}

// Health pings the store and answers 503 when it cannot be reached
func Health(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
