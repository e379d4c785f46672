package handlers

import (
	"net/http"
	"strconv"

	"github.com/imran12mia/hopweb/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListUsers returns every account, newest first.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// SearchUser looks an account up by phone and returns it together with
// its purchases, deposits and withdrawals.
func (h *Handler) SearchUser(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByPhone(ctx, phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	purchases, err := h.PurchaseRepo.ListByUser(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	deposits, err := h.DepositRepo.ListByUser(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	withdrawals, err := h.WithdrawalRepo.ListByUser(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"packages":    purchases,
		"deposits":    deposits,
		"withdrawals": withdrawals,
	})
}

type updateBalanceRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required,min=1"`
	Type   string `json:"type" binding:"required,oneof=add subtract"`
}

// UpdateBalance applies a manual admin correction through the ledger.
func (h *Handler) UpdateBalance(c *gin.Context) {
	var req updateBalanceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	delta := req.Amount
	if req.Type == "subtract" {
		delta = -delta
	}

	balance, err := h.Ledger.AdjustBalance(c.Request.Context(), req.UserID, delta)
	if err != nil {
		ledgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "balance": balance})
}

type packageRequest struct {
	Name               string `json:"name" binding:"required"`
	Price              int64  `json:"price" binding:"required,min=1"`
	DailyEarning       int64  `json:"daily_earning" binding:"required,min=1"`
	TotalIncome        int64  `json:"total_income"`
	ValidityDays       int    `json:"validity_days" binding:"required,min=1"`
	ReferralCommission int64  `json:"referral_commission"`
	ImageURL           string `json:"image_url"`
	Status             string `json:"status"`
}

// ListAllPackages returns the full catalog including inactive items.
func (h *Handler) ListAllPackages(c *gin.Context) {
	packages, err := h.PackageRepo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, packages)
}

// CreatePackage adds a catalog item.
func (h *Handler) CreatePackage(c *gin.Context) {
	var req packageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	pkg := &domain.Package{
		Name:               req.Name,
		Price:              req.Price,
		DailyEarning:       req.DailyEarning,
		TotalIncome:        req.TotalIncome,
		ValidityDays:       req.ValidityDays,
		ReferralCommission: req.ReferralCommission,
		ImageURL:           req.ImageURL,
		Status:             domain.PackageStatus(req.Status),
	}
	if pkg.Status == "" {
		pkg.Status = domain.PackageActive
	}

	if err := h.PackageRepo.Create(c.Request.Context(), pkg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "package": pkg})
}

// UpdatePackage edits a catalog item.
func (h *Handler) UpdatePackage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid package id"})
		return
	}

	var req packageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	status := domain.PackageStatus(req.Status)
	if status != domain.PackageActive && status != domain.PackageInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	pkg := &domain.Package{
		ID:                 id,
		Name:               req.Name,
		Price:              req.Price,
		DailyEarning:       req.DailyEarning,
		TotalIncome:        req.TotalIncome,
		ValidityDays:       req.ValidityDays,
		ReferralCommission: req.ReferralCommission,
		ImageURL:           req.ImageURL,
		Status:             status,
	}
	if err := h.PackageRepo.Update(c.Request.Context(), pkg); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "package": pkg})
}

// ListDeposits returns the full deposit queue with requester phones.
func (h *Handler) ListDeposits(c *gin.Context) {
	deposits, err := h.DepositRepo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, deposits)
}

type reviewRequest struct {
	ID     int64  `json:"id" binding:"required"`
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// DepositAction approves or rejects a pending deposit.
func (h *Handler) DepositAction(c *gin.Context) {
	var req reviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	deposit, err := h.Ledger.ReviewDeposit(c.Request.Context(), req.ID, req.Action == "approve")
	if err != nil {
		ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deposit": deposit})
}

// ListWithdrawals returns the full withdrawal queue with requester phones.
func (h *Handler) ListWithdrawals(c *gin.Context) {
	withdrawals, err := h.WithdrawalRepo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

// WithdrawalAction approves or rejects a pending withdrawal.
func (h *Handler) WithdrawalAction(c *gin.Context) {
	var req reviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	withdrawal, err := h.Ledger.ReviewWithdrawal(c.Request.Context(), req.ID, req.Action == "approve")
	if err != nil {
		ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "withdrawal": withdrawal})
}

type settingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// UpsertSetting writes one setting.
func (h *Handler) UpsertSetting(c *gin.Context) {
	var req settingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.SettingRepo.Upsert(c.Request.Context(), req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type noticeRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateNotice appends a broadcast notice and pushes it to websocket
// subscribers.
func (h *Handler) CreateNotice(c *gin.Context) {
	var req noticeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	notice := &domain.Notice{Content: req.Content}
	if err := h.NoticeRepo.Create(c.Request.Context(), notice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if h.NoticeHub != nil {
		h.NoticeHub.Publish(gin.H{"type": "notice", "notice": notice})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notice": notice})
}

type giftCodeRequest struct {
	Code      string `json:"code" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,min=1"`
	MaxClaims int    `json:"max_claims" binding:"required,min=1"`
}

// CreateGiftCode mints a redeemable gift code.
func (h *Handler) CreateGiftCode(c *gin.Context) {
	var req giftCodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	code := &domain.GiftCode{
		Code:      req.Code,
		Amount:    req.Amount,
		MaxClaims: req.MaxClaims,
	}
	if err := h.GiftRepo.CreateCode(c.Request.Context(), code); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code already exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "gift_code": code})
}

// PlatformStats returns aggregate platform statistics.
func (h *Handler) PlatformStats(c *gin.Context) {
	stats, err := h.Admin.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
