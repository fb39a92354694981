package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youssefibrahim146/Volt/apperrors"
	"github.com/youssefibrahim146/Volt/auth"
	"github.com/youssefibrahim146/Volt/entities"
	"github.com/youssefibrahim146/Volt/usecases"
)

const (
	currentUserKey  = "currentUser"
	currentAdminKey = "currentAdmin"
)

type AuthMiddleware struct {
	Tokens *auth.Tokens
	Users  *usecases.UserUseCase
	Admins *usecases.AdminUseCase
}

func NewAuthMiddleware(tokens *auth.Tokens, users *usecases.UserUseCase, admins *usecases.AdminUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		Tokens: tokens,
		Users:  users,
		Admins: admins,
	}
}

// bearerToken extracts the bearer token, falling back to the token query
// parameter for websocket clients that cannot set headers.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// RequireUser admits only requests carrying a valid user token and stashes
// the loaded account in the request context.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.Tokens.Parse(bearerToken(c))
		if err != nil {
			abortError(c, apperrors.Unauthorized("authentication required"))
			return
		}
		if claims.Role != auth.RoleUser {
			abortError(c, apperrors.Forbidden("user access required"))
			return
		}

		user, err := m.Users.GetProfile(claims.Subject)
		if err != nil {
			abortError(c, apperrors.Unauthorized("account no longer exists"))
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin admits only requests carrying a valid admin token.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.Tokens.Parse(bearerToken(c))
		if err != nil {
			abortError(c, apperrors.Unauthorized("authentication required"))
			return
		}
		if claims.Role != auth.RoleAdmin {
			abortError(c, apperrors.Forbidden("admin access required"))
			return
		}

		admin, err := m.Admins.GetProfile(claims.Subject)
		if err != nil {
			abortError(c, apperrors.Unauthorized("account no longer exists"))
			return
		}

		c.Set(currentAdminKey, admin)
		c.Next()
	}
}

// CurrentUser returns the account stashed by RequireUser, or nil.
func CurrentUser(c *gin.Context) *entities.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// CurrentAdmin returns the account stashed by RequireAdmin, or nil.
func CurrentAdmin(c *gin.Context) *entities.Admin {
	if v, ok := c.Get(currentAdminKey); ok {
		if admin, ok := v.(*entities.Admin); ok {
			return admin
		}
	}
	return nil
}

func abortError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(apperrors.KindOf(err)), gin.H{
		"status":  "error",
		"message": apperrors.MessageOf(err),
		"data":    nil,
	})
}
