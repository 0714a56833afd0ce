package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClaimDaily pays the daily airdrop and advances the streak.
func (h *Handler) ClaimDaily(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	result, err := h.Rewards.ClaimDaily(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	unlocked, _ := h.Achievements.CheckAndUnlock(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"reward":                result,
		"unlocked_achievements": unlocked,
	})
}

// RewardHistory returns recent daily claims.
func (h *Handler) RewardHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	rewards, err := h.Rewards.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}

// SpinWheel plays the bonus wheel and credits the prize. Only the wheel game
// supports spinning.
func (h *Handler) SpinWheel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	if c.Param("type") != "wheel" {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}

	result, err := h.Rewards.SpinWheel(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecordGamePlay bumps today's play counter for a mini-game.
func (h *Handler) RecordGamePlay(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	play, err := h.Rewards.RecordGame(c.Request.Context(), userID, c.Param("type"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"play": play})
}
