package handlers

import (
	"errors"
	"net/http"

	"github.com/imran12mia/hopweb/internal/repository"
	"github.com/imran12mia/hopweb/internal/service"
	"github.com/imran12mia/hopweb/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB             *pgxpool.Pool
	Ledger         *service.LedgerService
	Admin          *service.AdminService
	NoticeHub      *ws.Hub
	UserRepo       *repository.UserRepository
	PackageRepo    *repository.PackageRepository
	PurchaseRepo   *repository.UserPackageRepository
	DepositRepo    *repository.DepositRepository
	WithdrawalRepo *repository.WithdrawalRepository
	GiftRepo       *repository.GiftRepository
	SettingRepo    *repository.SettingRepository
	NoticeRepo     *repository.NoticeRepository
}

func NewHandler(db *pgxpool.Pool, hub *ws.Hub) *Handler {
	return &Handler{
		DB:             db,
		Ledger:         service.NewLedgerService(db),
		Admin:          service.NewAdminService(db),
		NoticeHub:      hub,
		UserRepo:       repository.NewUserRepository(db),
		PackageRepo:    repository.NewPackageRepository(db),
		PurchaseRepo:   repository.NewUserPackageRepository(db),
		DepositRepo:    repository.NewDepositRepository(db),
		WithdrawalRepo: repository.NewWithdrawalRepository(db),
		GiftRepo:       repository.NewGiftRepository(db),
		SettingRepo:    repository.NewSettingRepository(db),
		NoticeRepo:     repository.NewNoticeRepository(db),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// ledgerError maps ledger errors onto HTTP responses. Precondition
// failures are client errors, everything else is a 500.
func ledgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "request is not pending"})
	case errors.Is(err, service.ErrDuplicateTransaction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction id already used"})
	case errors.Is(err, service.ErrAlreadyClaimed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "you already claimed this gift"})
	case errors.Is(err, service.ErrCodeExhausted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "gift code expired"})
	case errors.Is(err, service.ErrCooldownActive):
		c.JSON(http.StatusBadRequest, gin.H{"error": "you can claim once every 24 hours"})
	case errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
