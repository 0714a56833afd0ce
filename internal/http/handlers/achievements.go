package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListAchievements returns the catalog with the caller's unlock state.
func (h *Handler) ListAchievements(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	achievements, err := h.Achievements.List(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// CheckAchievements re-evaluates unlock conditions and returns anything newly
// earned.
func (h *Handler) CheckAchievements(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	unlocked, err := h.Achievements.CheckAndUnlock(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlocked": unlocked})
}
