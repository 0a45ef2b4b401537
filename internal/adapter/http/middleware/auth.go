package middleware

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	. "blogapp/internal/adapter/http/helper"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
	ct "blogapp/pkg/context"
)

const userKey = "x-user"

// AuthMiddleware resolves the bearer token to an enabled user and stores it
// on the request. Anything else aborts with 401.
func AuthMiddleware(tokens port.TokenCodec, users port.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			SendUnauthorizedError(c, "Invalid authorization format")
			c.Abort()
			return
		}

		email, err := tokens.Subject(strings.TrimSpace(bearer[len("Bearer "):]))
		if err != nil {
			SendUnauthorizedError(c, "Invalid token")
			c.Abort()
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				slog.Error("AuthMiddleware", "email", email, "error", err)
			}
			SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		if !user.Enabled {
			SendUnauthorizedError(c, "User is not enabled")
			c.Abort()
			return
		}

		current := GetCurrent(c)
		current.Set(ct.UserEmailKey, user.Email)
		current.Set(ct.UserUUIDKey, user.UUID.String())
		current.Set(ct.UserRoleKey, string(user.Role))

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		if !slices.Contains(roles, user.Role) {
			SendForbiddenError(c, "Access denied")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSelfOrRole lets the request through when the :param path value is
// the caller's own uuid or the caller holds one of roles.
func RequireSelfOrRole(param string, roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		if user.UUID.String() != c.Param(param) && !slices.Contains(roles, user.Role) {
			SendForbiddenError(c, "Access denied")
			c.Abort()
			return
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(userKey)
	if !ok {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)
	return user, ok
}
