package middleware

import (
	"strings"

	"github.com/dfryer1193/photogram/shared/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// TokenVerifier turns a bearer token into a caller
type TokenVerifier interface {
	Verify(raw string) (auth.Caller, error)
}

// Authenticate stores the request's caller in its context. Requests without a
// valid bearer token proceed as anonymous; each operation decides what that means.
func Authenticate(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := auth.Anonymous()

		if raw, ok := bearerToken(c.GetHeader("Authorization")); ok {
			verified, err := tokens.Verify(raw)
			if err != nil {
				log.Debug().Err(err).Str("requestID", c.GetString(RequestIDKey)).Msg("Ignoring invalid bearer token")
			} else {
				caller = verified
			}
		}

		c.Request = c.Request.WithContext(auth.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
