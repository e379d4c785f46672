package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService provides platform statistics for the admin dashboard.
type AdminService struct {
	db *pgxpool.Pool
}

// NewAdminService creates a new admin service
func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{db: db}
}

// Stats represents platform statistics
type Stats struct {
	TotalUsers         int64 `json:"total_users"`
	NewUsersToday      int64 `json:"new_users_today"`
	BalanceInFlight    int64 `json:"balance_in_flight"` // sum of all user balances
	ActivePackages     int64 `json:"active_packages"`
	PackagesSold       int64 `json:"packages_sold"`
	PendingDeposits    int64 `json:"pending_deposits"`
	PendingWithdrawals int64 `json:"pending_withdrawals"`
	TotalDeposited     int64 `json:"total_deposited"`  // approved deposits
	TotalWithdrawn     int64 `json:"total_withdrawn"`  // approved withdrawals
	GiftAmountClaimed  int64 `json:"gift_amount_claimed"`
}

// GetStats returns platform statistics
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	today := time.Now().Truncate(24 * time.Hour)

	_ = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE created_at >= $1
	`, today).Scan(&stats.NewUsersToday)

	_ = s.db.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM users`).Scan(&stats.BalanceInFlight)

	_ = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM packages WHERE status = 'active'`).Scan(&stats.ActivePackages)

	_ = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_packages`).Scan(&stats.PackagesSold)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM deposits WHERE status = 'pending'
	`).Scan(&stats.PendingDeposits)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'
	`).Scan(&stats.PendingWithdrawals)

	_ = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM deposits WHERE status = 'approved'
	`).Scan(&stats.TotalDeposited)

	_ = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE status = 'approved'
	`).Scan(&stats.TotalWithdrawn)

	_ = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(g.amount), 0)
		FROM gift_claims c
		JOIN gift_codes g ON c.code_id = g.id
	`).Scan(&stats.GiftAmountClaimed)

	return stats, nil
}
