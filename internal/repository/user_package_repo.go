package repository

import (
	"context"

	"github.com/imran12mia/hopweb/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPackageRepository struct {
	db *pgxpool.Pool
}

func NewUserPackageRepository(db *pgxpool.Pool) *UserPackageRepository {
	return &UserPackageRepository{db: db}
}

// ListByUser returns a user's purchases joined with catalog fields,
// newest first
func (r *UserPackageRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserPackage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT up.id, up.user_id, up.package_id, up.purchased_at, up.expires_at, up.last_claim_at,
		       p.name, p.daily_earning, p.total_income
		FROM user_packages up
		JOIN packages p ON up.package_id = p.id
		WHERE up.user_id = $1
		ORDER BY up.purchased_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.UserPackage
	for rows.Next() {
		var up domain.UserPackage
		if err := rows.Scan(
			&up.ID, &up.UserID, &up.PackageID, &up.PurchasedAt, &up.ExpiresAt, &up.LastClaimAt,
			&up.PackageName, &up.DailyEarning, &up.TotalIncome,
		); err != nil {
			return nil, err
		}
		purchases = append(purchases, up)
	}
	return purchases, rows.Err()
}
