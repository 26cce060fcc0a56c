package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tourbook/catalog/internal/auth"
	"github.com/tourbook/catalog/internal/utils"
)

type LoginAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginAdminResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthHandler issues tokens for the back-office listing. A nil manager
// disables login.
type AuthHandler struct {
	manager     *auth.Manager
	credentials auth.Credentials
}

func NewAuthHandler(manager *auth.Manager, credentials auth.Credentials) *AuthHandler {
	return &AuthHandler{manager: manager, credentials: credentials}
}

func (a *AuthHandler) LoginAdmin(ctx *gin.Context) {
	if a.manager == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login is not configured"})
		return
	}

	var body LoginAdminRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	username := strings.TrimSpace(body.Username)

	if err := a.credentials.Check(username, body.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		slog.Error("Failed to check credentials", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := a.manager.GenerateJWT(username)

	if err != nil {
		slog.Error("Failed to generate JWT", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, LoginAdminResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(a.manager.TTL()).UTC(),
	})
}

func (a *AuthHandler) Me(ctx *gin.Context) {
	admin, err := utils.GetCurrentAdmin(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": admin})
}
