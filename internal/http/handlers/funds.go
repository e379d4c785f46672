package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type depositRequest struct {
	Amount        int64  `json:"amount" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
	Method        string `json:"method" binding:"required"`
}

// SubmitDeposit records a funding request for admin review.
func (h *Handler) SubmitDeposit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req depositRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	deposit, err := h.Ledger.SubmitDeposit(c.Request.Context(), userID, req.Amount, req.TransactionID, req.Method)
	if err != nil {
		ledgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deposit": deposit})
}

type withdrawRequest struct {
	Amount        int64  `json:"amount" binding:"required"`
	Method        string `json:"method" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
}

// SubmitWithdrawal places a payout request; the amount is held
// immediately.
func (h *Handler) SubmitWithdrawal(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req withdrawRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	withdrawal, balance, err := h.Ledger.SubmitWithdrawal(c.Request.Context(), userID, req.Amount, req.Method, req.AccountNumber)
	if err != nil {
		ledgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"withdrawal": withdrawal,
		"balance":    balance,
	})
}

// DepositHistory lists the caller's deposits, newest first.
func (h *Handler) DepositHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	deposits, err := h.DepositRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, deposits)
}

// WithdrawalHistory lists the caller's withdrawals, newest first.
func (h *Handler) WithdrawalHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	withdrawals, err := h.WithdrawalRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}
