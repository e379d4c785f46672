package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPackages returns the active catalog.
func (h *Handler) ListPackages(c *gin.Context) {
	packages, err := h.PackageRepo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, packages)
}

type buyPackageRequest struct {
	PackageID int64 `json:"package_id" binding:"required"`
}

// BuyPackage purchases a catalog package for the caller.
func (h *Handler) BuyPackage(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req buyPackageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	purchase, balance, err := h.Ledger.PurchasePackage(c.Request.Context(), userID, req.PackageID)
	if err != nil {
		ledgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"purchase": purchase,
		"balance":  balance,
	})
}

// MyPackages lists the caller's purchases with catalog fields joined.
func (h *Handler) MyPackages(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	purchases, err := h.PurchaseRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, purchases)
}

type claimEarningRequest struct {
	UserPackageID int64 `json:"user_package_id" binding:"required"`
}

// ClaimEarning claims the daily earning on one purchased package.
func (h *Handler) ClaimEarning(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req claimEarningRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	earning, balance, err := h.Ledger.ClaimEarning(c.Request.Context(), userID, req.UserPackageID)
	if err != nil {
		ledgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"earning": earning,
		"balance": balance,
	})
}
