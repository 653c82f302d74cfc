// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/storefront"
	"github.com/your-org/storefront/internal/domain/user"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	users  *user.Service
	front  *storefront.Storefront
	logger *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *user.Service, front *storefront.Storefront, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{users: users, front: front, logger: logger}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var form user.RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.users.Register(c.Request.Context(), form); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registered successfully",
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var form user.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, err)
		return
	}

	sess, err := h.users.Login(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.front.SetSession(c.Request.Context(), sess); err != nil {
		h.logger.WithError(err).Warn("logged in but the cart could not be loaded")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in successfully",
		"data": gin.H{
			"username": sess.Username,
			"balance":  sess.Balance,
		},
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	_ = h.front.SetSession(c.Request.Context(), nil)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// GetSession handles GET /api/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	snap := h.front.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"loggedIn": snap.LoggedIn,
			"username": snap.Username,
			"balance":  snap.Balance,
		},
	})
}
