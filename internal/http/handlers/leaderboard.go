package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the top users for a board: points (default),
// earnings or streak.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	board := c.DefaultQuery("board", "points")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.Leaderboard.Get(c.Request.Context(), board, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"board":   board,
		"entries": entries,
	})
}
