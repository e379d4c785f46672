package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type claimGiftRequest struct {
	Code string `json:"code" binding:"required"`
}

// ClaimGift redeems a one-time gift code for the caller.
func (h *Handler) ClaimGift(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req claimGiftRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	amount, balance, err := h.Ledger.RedeemGiftCode(c.Request.Context(), userID, req.Code)
	if err != nil {
		ledgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"amount":  amount,
		"balance": balance,
	})
}
