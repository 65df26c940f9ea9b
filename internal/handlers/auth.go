package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthside/backend/internal/apierrors"
	"github.com/hearthside/backend/internal/auth"
	"github.com/hearthside/backend/internal/metrics"
	"github.com/hearthside/backend/internal/util"
)

// Register creates a new account
// POST /api/v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "email and password are required")
		return
	}

	resp, err := h.accounts.Register(req)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	metrics.Get().UsersRegisteredTotal.Inc()
	c.JSON(http.StatusOK, resp)
}

// Login authenticates with email/password
// POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "email and password are required")
		return
	}

	resp, err := h.accounts.Login(req)
	if err != nil {
		if apiErr, ok := err.(*apierrors.APIError); ok && apiErr.Code == apierrors.ErrForbidden {
			metrics.Get().LoginsTotal.WithLabelValues("suspended").Inc()
		} else {
			metrics.Get().LoginsTotal.WithLabelValues("failure").Inc()
		}
		util.RespondServiceError(c, err)
		return
	}

	metrics.Get().LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user's record
// GET /api/v1/auth/me
func (h *Handlers) Me(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile merges the supplied profile fields into the caller's record
// PUT /api/v1/auth/update
func (h *Handlers) UpdateProfile(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req auth.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	updated, err := h.accounts.UpdateProfile(user, req)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated",
		"user":    updated,
	})
}

// DeleteAccount removes the caller's account. Their posts stay.
// DELETE /api/v1/auth/delete
func (h *Handlers) DeleteAccount(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	if err := h.accounts.DeleteAccount(user); err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// Suspend disables the caller's account
// POST /api/v1/auth/suspend
func (h *Handlers) Suspend(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	if err := h.accounts.Suspend(user); err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account suspended"})
}

// Reactivate re-enables the caller's account
// POST /api/v1/auth/reactivate
func (h *Handlers) Reactivate(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	updated, err := h.accounts.Reactivate(user)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "account reactivated",
		"user":    updated,
	})
}

// AdminReactivate re-enables another user's account. The route is gated by
// the admin middleware.
// POST /api/v1/auth/admin-reactivate
func (h *Handlers) AdminReactivate(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "user_id is required")
		return
	}

	updated, err := h.accounts.AdminReactivate(req.UserID)
	if err != nil {
		util.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "account reactivated",
		"user":    updated,
	})
}
