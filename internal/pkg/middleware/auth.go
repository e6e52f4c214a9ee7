package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/piresc/mycompta/internal/pkg/logger"
	nr "github.com/piresc/mycompta/internal/pkg/newrelic"
	"github.com/piresc/mycompta/internal/pkg/requestcontext"
	"github.com/piresc/mycompta/internal/utils"
)

// UserIDKey is the echo context key holding the authenticated user id
const UserIDKey = "user_id"

// TokenVerifier resolves a bearer token to a user id
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the caller identity under UserIDKey
func BearerAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			userID, err := verifier.VerifyToken(c.Request().Context(), parts[1])
			if err != nil {
				logger.WarnCtx(c.Request().Context(), "Bearer token rejected",
					logger.String("path", c.Request().URL.Path),
					logger.Err(err))
				return utils.UnauthorizedResponse(c, err.Error())
			}

			c.Set(UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(requestcontext.WithUserID(c.Request().Context(), userID)))
			nr.AddTransactionAttribute(nr.FromContext(c.Request().Context()), "user.id", userID)

			return next(c)
		}
	}
}

// UserID returns the identity set by BearerAuth
func UserID(c echo.Context) string {
	userID, _ := c.Get(UserIDKey).(string)
	return userID
}
