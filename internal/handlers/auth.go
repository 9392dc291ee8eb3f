package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/yashnextsavy/HydrationTracker/internal/middleware"
	"github.com/yashnextsavy/HydrationTracker/internal/models"
	"github.com/yashnextsavy/HydrationTracker/internal/store"
	"github.com/yashnextsavy/HydrationTracker/internal/utils"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func newUserResponse(user *models.User) userResponse {
	out := userResponse{ID: user.ID, Username: user.Username}
	if !user.CreatedAt.IsZero() {
		out.CreatedAt = user.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	username := strings.TrimSpace(body.Username)
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		fail(c, http.StatusBadRequest, "Username must be between 3 and 50 characters")
		return
	}
	if len(body.Password) < utils.MinPasswordLength {
		fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hashed, err := utils.HashPassword(body.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		fail(c, http.StatusBadRequest, "Password is too long")
		return
	}
	if err != nil {
		h.serverError(c, err, "Error hashing password")
		return
	}

	user := &models.User{Username: username, Password: hashed, CreatedAt: h.now().UTC()}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			fail(c, http.StatusBadRequest, "Username already exists")
			return
		}
		h.serverError(c, err, "Error creating user")
		return
	}

	h.startSession(c, http.StatusCreated, user)
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Username) == "" || body.Password == "" {
		fail(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), strings.TrimSpace(body.Username))
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		h.serverError(c, err, "Error logging in")
		return
	}

	if !utils.CheckPasswordHash(body.Password, user.Password) {
		fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	h.startSession(c, http.StatusOK, user)
}

func (h *Handler) startSession(c *gin.Context, status int, user *models.User) {
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		h.serverError(c, err, "Error generating token")
		return
	}

	h.setTokenCookie(c, token, int(utils.TokenTTL.Seconds()))
	c.JSON(status, gin.H{
		"user":  newUserResponse(user),
		"token": token,
	})
}

func (h *Handler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, value, maxAge, "/", "", h.cookieSecure, true)
}

// Logout clears the session cookie. Bearer tokens stay valid until they expire.
func (h *Handler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) CurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.serverError(c, err, "Error loading user")
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
