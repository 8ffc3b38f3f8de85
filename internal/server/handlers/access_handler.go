package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
	"github.com/mamadbah2/farmledger/internal/service/access"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AccessHandler exposes sign-in and user management.
type AccessHandler struct {
	svc    *access.Service
	logger *zap.Logger
}

// NewAccessHandler constructs the HTTP handler adapter.
func NewAccessHandler(svc *access.Service, logger *zap.Logger) *AccessHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessHandler{svc: svc, logger: logger}
}

// Login signs a user in.
func (h *AccessHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ok, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("failed persisting session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to sign in"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	user, _ := h.svc.CurrentUser()
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
}

// Logout clears the session.
func (h *AccessHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context()); err != nil {
		h.logger.Error("failed clearing session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to sign out"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Session reports who is signed in.
func (h *AccessHandler) Session(c *gin.Context) {
	user, ok := h.svc.CurrentUser()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
}

// ListUsers returns every account.
func (h *AccessHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Users())
}

// CreateUser adds an account.
func (h *AccessHandler) CreateUser(c *gin.Context) {
	var form models.UserForm
	if !h.bindForm(c, &form) {
		return
	}
	user, err := h.svc.CreateUser(c.Request.Context(), form)
	if err != nil {
		h.policyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser replaces an account's fields.
func (h *AccessHandler) UpdateUser(c *gin.Context) {
	var form models.UserForm
	if !h.bindForm(c, &form) {
		return
	}
	user, err := h.svc.UpdateUser(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		h.policyError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ToggleUser flips an account's active flag.
func (h *AccessHandler) ToggleUser(c *gin.Context) {
	user, err := h.svc.ToggleUserStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.policyError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account.
func (h *AccessHandler) DeleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.policyError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccessHandler) bindForm(c *gin.Context, form *models.UserForm) bool {
	if err := c.ShouldBindJSON(form); err != nil {
		h.logger.Warn("invalid user form", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *AccessHandler) policyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrDuplicateEmail),
		errors.Is(err, access.ErrLastAdmin),
		errors.Is(err, access.ErrLastActiveAdmin),
		errors.Is(err, access.ErrSelfDeactivation),
		errors.Is(err, access.ErrSelfDeletion):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("user operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
