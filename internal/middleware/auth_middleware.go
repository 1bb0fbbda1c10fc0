package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appauth "github.com/kin-platform/kin-backend/internal/app/auth"
	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	pkgauth "github.com/kin-platform/kin-backend/internal/pkg/auth"
)

const principalKey = "principal"

// AccessTokenCookie is the cookie carrying the login token
const AccessTokenCookie = "accessToken"

// AuthMiddleware authenticates requests and attaches a Principal
type AuthMiddleware struct {
	tokenService *pkgauth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokenService *pkgauth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// RequireAuth validates the access token and stores the caller's Principal
// in the request context. The accessToken cookie is checked first, with a
// Bearer header fallback for non-browser clients.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := m.extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(http.StatusUnauthorized, "Authentication required. Please login."))
			return
		}

		claims, err := m.tokenService.VerifyAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(http.StatusUnauthorized, "Invalid or expired session. Please login again."))
			return
		}

		c.Set(principalKey, appauth.Principal{
			ID:   claims.UserID,
			Role: models.Role(claims.Role),
		})
		c.Next()
	}
}

// RequireRoles allows only the listed roles past. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(http.StatusUnauthorized, "Authentication required. Please login."))
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(http.StatusForbidden, "You don't have permission for this action"))
	}
}

// RequireGuest rejects requests that already carry a valid session. Used on
// register, login and the password reset endpoints.
func (m *AuthMiddleware) RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := m.extractToken(c)
		if tokenString != "" {
			if _, err := m.tokenService.VerifyAccessToken(tokenString); err == nil {
				c.AbortWithStatusJSON(http.StatusBadRequest,
					dto.NewErrorResponse(http.StatusBadRequest, "You are already logged in"))
				return
			}
		}
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated Principal from the context
func GetPrincipal(c *gin.Context) (appauth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return appauth.Principal{}, false
	}
	principal, ok := value.(appauth.Principal)
	return principal, ok
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
