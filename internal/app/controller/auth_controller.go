package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/deviceshop/deviceshop-backend/internal/middleware"
	"github.com/deviceshop/deviceshop-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService  service.AuthService
	cookieSecure bool
}

func NewAuthController(authService service.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{
		authService:  authService,
		cookieSecure: cookieSecure,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Next     string `json:"next" form:"next"`
}

func userResponse(user *model.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	}
}

func (ctrl *AuthController) setSession(c *gin.Context, tokens *util.TokenPair) {
	maxAge := int(time.Until(tokens.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, tokens.AccessToken, maxAge, "/", "", ctrl.cookieSecure, true)
}

// safeNext accepts only local absolute paths
func safeNext(next string) (string, bool) {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "", false
	}
	return next, true
}

// Register handles user registration
// POST /register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		respondBindError(c, err, "Please fill in name, email and password.")
		return
	}

	user, tokens, err := ctrl.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "register user")
		return
	}

	ctrl.setSession(c, tokens)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Welcome, " + user.Username + "!",
		"user":    userResponse(user),
		"tokens":  tokens,
	})
}

// Login handles user login. A local "next" path answers with a redirect.
// POST /login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		respondBindError(c, err, "Please fill in email and password.")
		return
	}
	if req.Next == "" {
		req.Next = c.Query("next")
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err, "login")
		return
	}

	ctrl.setSession(c, tokens)

	if next, ok := safeNext(req.Next); ok {
		c.Redirect(http.StatusSeeOther, next)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully.",
		"user":    userResponse(user),
		"tokens":  tokens,
	})
}

// Logout revokes the current token and clears the session cookie
// GET /logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	if token := middleware.GetToken(c); token != "" {
		if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err, "logout")
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", ctrl.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out.",
	})
}
