package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierror "io.winapps.prompts/internal/models/api_error"
)

// UIDKey is the context key holding the authenticated Firebase user id.
const UIDKey = "uid"

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthMiddleware verifies a Firebase ID token from the Authorization header and sets the user uid in context
func AuthMiddleware(verifier TokenVerifier, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authorization header is required"))
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authorization header must start with 'Bearer '"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token is required"))
			return
		}

		idToken, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			logger.Warnw("id token verification failed",
				"request_id", c.GetString(RequestIDKey),
				"path", c.Request.URL.Path,
				"error", err,
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		c.Set(UIDKey, idToken.UID)
		c.Next()
	}
}
