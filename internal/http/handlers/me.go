package handlers

import (
	"net/http"
	"strconv"

	"github.com/Gbothemy/crypto-earning/internal/repository"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user with balances.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Auth.GetUser(ctx, userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	balance, err := repository.NewBalanceRepository(h.DB).GetByUserID(ctx, userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	tier, err := h.Conversion.ResolveTier(ctx, user.VIPLevel)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"balances": balance,
		"vip_tier": tier,
	})
}

type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// UpdateProfile changes the caller's profile fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	user, err := h.Auth.UpdateProfile(c.Request.Context(), userID, req.Username, req.Email, req.Avatar)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// MyActivity returns the caller's recent audit trail entries.
func (h *Handler) MyActivity(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	activities, err := h.Notifications.RecentActivity(c.Request.Context(), userID, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
