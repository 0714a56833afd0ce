package handlers

import (
	"net/http"
	"strconv"

	"github.com/Gbothemy/crypto-earning/internal/domain"

	"github.com/gin-gonic/gin"
)

type WithdrawRequest struct {
	Currency string  `json:"currency" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Address  string  `json:"address" binding:"required"`
	Network  string  `json:"network" binding:"required"`
	Memo     string  `json:"memo"`
}

// RequestWithdrawal files a withdrawal request and debits the balance.
func (h *Handler) RequestWithdrawal(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency, amount, address and network are required"})
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		respondErr(c, err)
		return
	}

	request, err := h.Withdrawal.Request(c.Request.Context(), userID, currency, req.Amount, req.Address, req.Network, req.Memo)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": request})
}

type EstimateRequest struct {
	Currency string  `json:"currency" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Network  string  `json:"network" binding:"required"`
}

// EstimateWithdrawal previews the fee and net amount without filing anything.
func (h *Handler) EstimateWithdrawal(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency, amount and network are required"})
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		respondErr(c, err)
		return
	}

	fee, net, err := h.Withdrawal.Estimate(currency, req.Amount, req.Network)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currency":     currency,
		"amount":       req.Amount,
		"network":      req.Network,
		"network_fee":  fee,
		"net_amount":   net,
		"min_withdraw": currency.MinWithdraw(),
	})
}

// MyWithdrawals lists the caller's requests, newest first.
func (h *Handler) MyWithdrawals(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	requests, err := h.Withdrawal.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// WithdrawalOptions returns the currency catalog: minimums, networks and
// per-network fees, for client-side form building.
func (h *Handler) WithdrawalOptions(c *gin.Context) {
	options := make([]gin.H, 0, len(domain.Currencies))
	for _, cur := range domain.Currencies {
		networks := make([]gin.H, 0, 4)
		for _, n := range cur.Networks() {
			networks = append(networks, gin.H{"name": n, "fee": domain.NetworkFee(n)})
		}
		options = append(options, gin.H{
			"currency":     cur,
			"min_withdraw": cur.MinWithdraw(),
			"networks":     networks,
		})
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}
