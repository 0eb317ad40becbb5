package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-users-backend/internal/domain"
)

// Accounts and Listings are the slices of the service layer the handlers
// consume; tests substitute fakes.
type Accounts interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (string, error)
}

type Listings interface {
	List(ctx context.Context) ([]domain.PublicUser, error)
}

type UserHandler struct {
	accounts Accounts
	listings Listings
	log      *zap.Logger
}

func NewUserHandler(accounts Accounts, listings Listings, log *zap.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, listings: listings, log: log}
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /register.
func (h *UserHandler) Register(c *gin.Context) {
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}
	if err := h.accounts.Register(c.Request.Context(), in.Username, in.Password); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "user already exists"})
			return
		}
		h.log.Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registered"})
}

// Login handles POST /login. Unknown user and wrong password produce the
// same 401 body.
func (h *UserHandler) Login(c *gin.Context) {
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}
	greeting, err := h.accounts.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
			return
		}
		h.log.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": greeting})
}

// ListUsers handles GET /users, returning the projected list as a bare array
// to match the original wire shape.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.listings.List(c.Request.Context())
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, users)
}
