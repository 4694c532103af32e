// Package jwtmw provides access token generation, verification and the
// gin middleware protecting authenticated routes.
package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"calendar_backend/internal/feature/auth/domain/entity"
	"calendar_backend/internal/feature/auth/usecase"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUser   = "currentUser"
	ContextUserID = "userID"
)

// UserResolver resolves the active user behind a verified token subject.
// Following Go convention, the interface is defined by the consumer (middleware).
type UserResolver interface {
	// CurrentUser returns the user for the given email, or an error if the
	// user does not exist or is inactive.
	CurrentUser(ctx context.Context, email string) (*entity.User, error)
}

// AuthRequired returns a gin middleware that validates the bearer token and
// loads the current user into the request context.
// Invalid, expired or malformed tokens, unknown subjects and inactive users
// are all rejected with 401. Resolver failures that are not authentication
// failures (e.g. the store being unreachable) surface as 500.
func AuthRequired(verifier Verifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Parse and verify the token (signature, algorithm, expiry)
		claims, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. Resolve the subject to an active user.
		// 毎リクエストでユーザーを再読込するため、無効化は次のリクエストから効く
		user, err := users.CurrentUser(c.Request.Context(), claims.Email)
		if err != nil {
			// 認証上の失敗のみ401。ストレージ障害などは一般的なサーバーエラーとして返す
			if errors.Is(err, usecase.ErrUserNotFound) || errors.Is(err, usecase.ErrUserInactive) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found or inactive"})
				return
			}
			slog.Error("current user lookup failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		// 4. Expose the user to downstream handlers
		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Next()
	}
}

// CurrentUserFrom returns the authenticated user stored by AuthRequired.
// It must only be called on routes behind the middleware.
func CurrentUserFrom(c *gin.Context) *entity.User {
	return c.MustGet(ContextUser).(*entity.User)
}
