package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wordbook/api/internal/auth"
	"github.com/wordbook/api/internal/model"
	"github.com/wordbook/api/internal/validator"
)

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type AuthHandler struct {
	users      UserStore
	jwtSecret  string
	jwtExpiry  time.Duration
	bcryptCost int
	log        *slog.Logger
}

func NewAuthHandler(users UserStore, jwtSecret string, jwtExpiry time.Duration, bcryptCost int, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		users:      users,
		jwtSecret:  jwtSecret,
		jwtExpiry:  jwtExpiry,
		bcryptCost: bcryptCost,
		log:        log.With("component", "auth"),
	}
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100,personname"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=100,strongpassword"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, strings.Join(validator.Messages(err), "; "))
		return
	}
	ctx := c.Request.Context()

	_, err := h.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		respondError(c, http.StatusBadRequest, "User already exists")
		return
	case !errors.Is(err, model.ErrNotFound):
		h.log.Error("lookup user by email", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.Error("hash password", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &model.User{Name: strings.TrimSpace(req.Name), Email: req.Email, Password: hash}
	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			respondError(c, http.StatusBadRequest, "User already exists")
			return
		}
		h.log.Error("create user", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, model.ErrNotFound) {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.log.Error("lookup user by email", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := auth.CheckPassword(req.Password, user.Password); err != nil {
		if !errors.Is(err, auth.ErrInvalidPassword) {
			h.log.Warn("compare password hash", "user_id", user.ID, "error", err)
		}
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := auth.GenerateAccessToken(user, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		h.log.Error("sign token", "user_id", user.ID, "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(status, AuthResponse{User: toUserResponse(user), Token: token})
}
