package http

import (
	"github.com/imran12mia/hopweb/internal/config"
	"github.com/imran12mia/hopweb/internal/http/handlers"
	"github.com/imran12mia/hopweb/internal/http/middleware"
	"github.com/imran12mia/hopweb/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the full API surface onto the router.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, hub *ws.Hub) *handlers.Handler {
	h := handlers.NewHandler(db, hub)
	healthHandler := handlers.NewHealthHandler(db)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Live notice feed
	r.GET("/ws/notices", h.NoticeFeed)

	api := r.Group("/api")
	api.Use(middleware.Metrics())
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)

	// Auth
	api.POST("/register", authRL, h.Register)
	api.POST("/login", authRL, h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/me", middleware.JWT(), h.Me)

	// Catalog and earnings
	api.GET("/packages", middleware.JWT(), h.ListPackages)
	api.POST("/buy-package", middleware.JWT(), h.BuyPackage)
	api.GET("/my-packages", middleware.JWT(), h.MyPackages)
	api.POST("/claim-earning", middleware.JWT(), h.ClaimEarning)

	// Money movement
	api.POST("/deposit", middleware.JWT(), h.SubmitDeposit)
	api.POST("/withdraw", middleware.JWT(), h.SubmitWithdrawal)
	api.GET("/history/deposits", middleware.JWT(), h.DepositHistory)
	api.GET("/history/withdrawals", middleware.JWT(), h.WithdrawalHistory)

	// Gift codes
	api.POST("/claim-gift", middleware.JWT(), h.ClaimGift)

	// Public info
	api.GET("/settings", h.Settings)
	api.GET("/notices", h.Notices)

	// Admin surface
	admin := api.Group("/admin")
	admin.Use(middleware.JWT(), middleware.RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/search", h.SearchUser)
		admin.POST("/users/update-balance", h.UpdateBalance)

		admin.GET("/packages", h.ListAllPackages)
		admin.POST("/packages", h.CreatePackage)
		admin.PUT("/packages/:id", h.UpdatePackage)

		admin.GET("/deposits", h.ListDeposits)
		admin.POST("/deposits/action", h.DepositAction)
		admin.GET("/withdrawals", h.ListWithdrawals)
		admin.POST("/withdrawals/action", h.WithdrawalAction)

		admin.POST("/settings", h.UpsertSetting)
		admin.POST("/notices", h.CreateNotice)
		admin.POST("/gift-codes", h.CreateGiftCode)

		admin.GET("/stats", h.PlatformStats)
	}

	return h
}
