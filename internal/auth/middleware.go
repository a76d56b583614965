package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "bazaar/internal/errors"
)

// contextKey is a private type so no other package can collide with our
// context entries.
type contextKey string

const userIDKey contextKey = "auth_user_id"

const bearerPrefix = "Bearer "

// RequireAuth returns middleware that authenticates requests via the
// Authorization header. On success the caller's user id is placed in the
// request context for handlers to read with UserIDFromContext.
//
// The two failure modes produce distinct messages (missing token vs failed
// token) but the failed-token message never says whether the token was
// tampered with or merely expired. Every branch returns exactly once; the
// next handler runs only on the success path.
func RequireAuth(tokens *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "not authorized, no token",
					Code:  "NO_TOKEN",
				})
			}

			userID, err := tokens.Verify(header[len(bearerPrefix):])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "not authorized, token failed",
					Code:  "TOKEN_FAILED",
				})
			}

			ctx := WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// WithUserID returns a child context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user id set by RequireAuth.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
