package handlers

import (
	"net/http"
	"strconv"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/gin-gonic/gin"
)

type ConvertRequest struct {
	Points   int64  `json:"points" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

// Convert exchanges points for crypto at the caller's VIP rate.
func (h *Handler) Convert(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points and currency are required"})
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		respondErr(c, err)
		return
	}

	conv, err := h.Conversion.Convert(c.Request.Context(), userID, req.Points, currency)
	if err != nil {
		respondErr(c, err)
		return
	}

	// unlock checks run after the payout so fresh counters are visible
	unlocked, _ := h.Achievements.CheckAndUnlock(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"conversion":            conv,
		"unlocked_achievements": unlocked,
	})
}

// ConversionHistory returns the caller's past conversions, newest first.
func (h *Handler) ConversionHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	history, err := h.Conversion.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversions": history})
}

// ListVIPTiers returns the VIP tier catalog.
func (h *Handler) ListVIPTiers(c *gin.Context) {
	tiers, err := h.Conversion.ListTiers(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tiers": tiers})
}
