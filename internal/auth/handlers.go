package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Controller exposes the authentication endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
}

func NewController(service *Service, sessionManager *SessionManager) *Controller {
	return &Controller{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes attaches the auth endpoints to the router.
func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/auth/login", ctrl.Login)
	router.POST("/api/auth/logout", ctrl.Logout)
	router.GET("/api/auth/me", ctrl.Me)
	router.POST("/api/auth/token", ctrl.GenerateToken)
	router.DELETE("/api/auth/token", ctrl.RevokeToken)
}

type loginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
}

// Login authenticates with username/email and password. A JWT is returned
// for API use and a session cookie is established for browsers.
func (ctrl *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := ctrl.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidPassword) {
			c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, expiresAt, err := ctrl.service.IssueJWT(user)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	if ctrl.sessionManager != nil {
		if err := ctrl.sessionManager.CreateSession(c.Request, user); err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
	}

	c.IndentedJSON(http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
	})
}

// Logout destroys the caller's session.
func (ctrl *Controller) Logout(c *gin.Context) {
	if ctrl.sessionManager != nil {
		if err := ctrl.sessionManager.DestroySession(c.Request); err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to destroy session"})
			return
		}
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user.
func (ctrl *Controller) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" || userID == DefaultUserID {
		c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := ctrl.service.GetUserByID(userID)
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, user)
}

// GenerateToken issues a long-lived API token for the authenticated user.
// The plaintext is only returned once.
func (ctrl *Controller) GenerateToken(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" || userID == DefaultUserID {
		c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	token, err := ctrl.service.IssueAPIToken(userID)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"token": token})
}

// RevokeToken clears the authenticated user's API token.
func (ctrl *Controller) RevokeToken(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" || userID == DefaultUserID {
		c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := ctrl.service.RevokeAPIToken(userID); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "token revoked"})
}
