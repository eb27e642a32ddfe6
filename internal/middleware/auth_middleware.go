package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/errors"
	"github.com/deviceshop/deviceshop-backend/pkg/redis"
	"github.com/deviceshop/deviceshop-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionCookieName holds the access token for browser clients.
const SessionCookieName = "session"

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	TokenKey     = "access_token"
)

// UserLookup loads the current account row; soft-deleted accounts are
// reported as gorm.ErrRecordNotFound.
type UserLookup interface {
	FindByID(id uint) (*model.User, error)
}

type AuthMiddleware struct {
	jwtSecret string
	blacklist redis.TokenBlacklist
	users     UserLookup
}

func NewAuthMiddleware(jwtSecret string, blacklist redis.TokenBlacklist, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		blacklist: blacklist,
		users:     users,
	}
}

// tokenFromRequest reads "Authorization: Bearer <token>" and falls back
// to the session cookie. ok is false for a malformed header.
func tokenFromRequest(c *gin.Context) (token string, ok bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie, true
	}
	return "", true
}

// verify returns the claims of a usable access token or an error code.
func (m *AuthMiddleware) verify(c *gin.Context, token string) (*util.Claims, string) {
	claims, err := util.ValidateToken(token, m.jwtSecret)
	if err != nil {
		if err == util.ErrExpiredToken {
			return nil, errors.AuthTokenExpired
		}
		return nil, errors.AuthTokenInvalid
	}
	if claims.Type != util.AccessToken {
		return nil, errors.AuthTokenInvalid
	}

	if m.blacklist != nil && claims.ID != "" {
		revoked, err := m.blacklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			GetLoggerFromContext(c).Error("Failed to check token revocation", err)
			return nil, errors.InternalServerError
		}
		if revoked {
			return nil, errors.AuthTokenRevoked
		}
	}
	return claims, ""
}

func setUser(c *gin.Context, claims *util.Claims, token string) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserEmailKey, claims.Email)
	c.Set(UserRoleKey, model.UserRole(claims.Role))
	c.Set(TokenKey, token)
}

// Authenticate validates the session token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, ok := tokenFromRequest(c)
		if !ok {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header.")
			c.Abort()
			return
		}
		if token == "" {
			log.Warn("Missing session token", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, code := m.verify(c, token)
		if code != "" {
			log.Warn("Token validation failed", map[string]interface{}{
				"path": c.Request.URL.Path,
				"code": code,
			})
			switch code {
			case errors.InternalServerError:
				errors.InternalError(c, "")
			case errors.AuthTokenExpired:
				errors.RespondWithError(c, http.StatusUnauthorized, code, "Your session has expired, please log in again.")
			default:
				errors.RespondWithError(c, http.StatusUnauthorized, code, "Your session is invalid, please log in again.")
			}
			c.Abort()
			return
		}

		setUser(c, claims, token)
		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// OptionalAuthenticate sets user info when a valid token is present and
// lets guests through otherwise.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := tokenFromRequest(c)
		if !ok || token == "" {
			c.Next()
			return
		}

		claims, code := m.verify(c, token)
		if code != "" {
			GetLoggerFromContext(c).Debug("Token rejected, continuing as guest", map[string]interface{}{
				"path": c.Request.URL.Path,
				"code": code,
			})
			c.Next()
			return
		}

		setUser(c, claims, token)
		c.Next()
	}
}

// RequireRole must run after Authenticate. The role is read from the
// account row, so demoted or deleted accounts lose access before their
// token expires.
func (m *AuthMiddleware) RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		userID, exists := GetUserID(c)
		if !exists {
			log.Warn("User information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzRoleNotFound, "You do not have access to this page.")
			c.Abort()
			return
		}

		user, err := m.users.FindByID(userID)
		if err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("Account no longer exists", map[string]interface{}{
					"user_id": userID,
					"path":    c.Request.URL.Path,
				})
				errors.Forbidden(c, "")
			} else {
				log.Error("Failed to load account for role check", err, map[string]interface{}{
					"user_id": userID,
				})
				errors.InternalError(c, "")
			}
			c.Abort()
			return
		}
		c.Set(UserRoleKey, user.Role)

		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}

		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      user.Role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.Forbidden(c, "")
		c.Abort()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(model.UserRole)
	return r, ok
}

// GetToken returns the raw access token of the request
func GetToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
