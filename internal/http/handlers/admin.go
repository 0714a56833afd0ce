package handlers

import (
	"net/http"
	"strconv"

	"github.com/Gbothemy/crypto-earning/internal/domain"
	"github.com/Gbothemy/crypto-earning/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminStats returns platform statistics for the dashboard.
func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.Admin.GetStats(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminListUsers returns all non-admin users, highest points first.
func (h *Handler) AdminListUsers(c *gin.Context) {
	users, err := h.Admin.ListUsers(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// AdminGetUser returns one user with balances.
func (h *Handler) AdminGetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, balance, err := h.Admin.GetUserDetail(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "balances": balance})
}

// AdminEditUser overwrites user counters and balances.
func (h *Handler) AdminEditUser(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var edit service.UserEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	admin, err := h.Auth.GetUser(c.Request.Context(), adminID)
	if err != nil {
		respondErr(c, err)
		return
	}

	user, err := h.Admin.EditUser(c.Request.Context(), id, edit, admin.Username)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminListWithdrawals returns requests by status (default pending, oldest
// first).
func (h *Handler) AdminListWithdrawals(c *gin.Context) {
	status := domain.WithdrawalStatus(c.DefaultQuery("status", string(domain.WithdrawalStatusPending)))
	requests, err := h.Withdrawal.ListByStatus(c.Request.Context(), status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

type ResolveRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// AdminResolveWithdrawal approves or rejects a pending request.
func (h *Handler) AdminResolveWithdrawal(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision is required"})
		return
	}

	admin, err := h.Auth.GetUser(c.Request.Context(), adminID)
	if err != nil {
		respondErr(c, err)
		return
	}

	request, err := h.Withdrawal.Resolve(c.Request.Context(), c.Param("id"),
		domain.WithdrawalStatus(req.Decision), admin.Username)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": request})
}

type CompleteRequest struct {
	TransactionHash string `json:"transaction_hash" binding:"required"`
}

// AdminCompleteWithdrawal attaches the on-chain hash to an approved request.
func (h *Handler) AdminCompleteWithdrawal(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction_hash is required"})
		return
	}

	request, err := h.Withdrawal.Complete(c.Request.Context(), c.Param("id"), req.TransactionHash)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": request})
}
