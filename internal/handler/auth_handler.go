package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/emirpasha/vidshare/internal/middleware"
	"github.com/emirpasha/vidshare/internal/models"
	"github.com/emirpasha/vidshare/internal/service"
	"github.com/emirpasha/vidshare/internal/utils"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService  *service.AuthService
	videoService *service.VideoService
	sessionTTL   time.Duration
}

func NewAuthHandler(authService *service.AuthService, videoService *service.VideoService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		videoService: videoService,
		sessionTTL:   sessionTTL,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account.
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	logger.Log.Info("User registration attempt",
		zap.String("username", req.Username),
		zap.String("role", req.Role),
		zap.String("ip", c.ClientIP()),
	)

	user, err := h.authService.Register(req.Username, req.Password, models.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			fail(c, http.StatusConflict, "Username already exists!")
		case errors.Is(err, service.ErrMissingCredentials), errors.Is(err, service.ErrInvalidRole):
			fail(c, http.StatusBadRequest, err.Error())
		default:
			logger.Log.Error("Registration failed",
				zap.String("username", req.Username),
				zap.Error(err),
			)
			fail(c, http.StatusInternalServerError, "An error occurred")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful! Please login.",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Login authenticates and establishes the session cookie.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Login request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	logger.Log.Info("User login attempt",
		zap.String("username", req.Username),
		zap.String("ip", c.ClientIP()),
	)

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			fail(c, http.StatusBadRequest, "Please enter both username and password!")
		case errors.Is(err, service.ErrInvalidCredentials):
			fail(c, http.StatusUnauthorized, "Invalid username or password!")
		default:
			logger.Log.Error("Login failed",
				zap.String("username", req.Username),
				zap.Error(err),
			)
			fail(c, http.StatusInternalServerError, "An error occurred")
		}
		return
	}

	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Welcome back, " + user.Username + "!",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Logout clears the session cookie.
// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		"",
		-1,
		"/",
		"",
		h.authService.IsProduction(),
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You have been logged out.",
	})
}

// Profile returns the session user's info plus their own videos.
// GET /profile
func (h *AuthHandler) Profile(c *gin.Context) {
	claims := c.MustGet("claims").(*utils.SessionClaims)

	user, err := h.authService.GetUser(claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, "An error occurred")
		return
	}

	videos, err := h.videoService.ListByUploader(claims.UserID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "An error occurred")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
		"videos": videos,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode) // CSRF protection
	c.SetCookie(
		middleware.SessionCookieName,
		token,
		int(h.sessionTTL.Seconds()),
		"/",
		"",
		h.authService.IsProduction(), // secure (HTTPS-only in production)
		true,                         // httpOnly
	)
}
