package handlers

import (
	"net/http"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListTasks returns active tasks with the caller's progress merged in.
// Optional ?type=daily|weekly|monthly filters by period.
func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	taskType := domain.TaskType(c.Query("type"))
	tasks, err := h.Tasks.List(c.Request.Context(), userID, taskType)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type ProgressRequest struct {
	Delta int `json:"delta"`
}

// AddTaskProgress advances the caller's counter for a task. Delta defaults
// to 1.
func (h *Handler) AddTaskProgress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req ProgressRequest
	_ = c.ShouldBindJSON(&req)
	if req.Delta == 0 {
		req.Delta = 1
	}

	progress, err := h.Tasks.AddProgress(c.Request.Context(), userID, c.Param("id"), req.Delta)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// ClaimTask pays out a completed task reward.
func (h *Handler) ClaimTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	user, err := h.Tasks.Claim(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	unlocked, _ := h.Achievements.CheckAndUnlock(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"user":                  user,
		"unlocked_achievements": unlocked,
	})
}
