package repository

import (
	"context"

	"github.com/imran12mia/hopweb/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GiftRepository struct {
	db *pgxpool.Pool
}

func NewGiftRepository(db *pgxpool.Pool) *GiftRepository {
	return &GiftRepository{db: db}
}

// GetByCode retrieves a gift code by its code string
func (r *GiftRepository) GetByCode(ctx context.Context, code string) (*domain.GiftCode, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, code, amount, max_claims, claimed_count, created_at
		FROM gift_codes
		WHERE code = $1
	`, code)

	var g domain.GiftCode
	if err := row.Scan(&g.ID, &g.Code, &g.Amount, &g.MaxClaims, &g.ClaimedCount, &g.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// CreateCode inserts a new gift code
func (r *GiftRepository) CreateCode(ctx context.Context, g *domain.GiftCode) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO gift_codes (code, amount, max_claims)
		VALUES ($1, $2, $3)
		RETURNING id, claimed_count, created_at
	`, g.Code, g.Amount, g.MaxClaims).Scan(&g.ID, &g.ClaimedCount, &g.CreatedAt)
}

// HasClaimed reports whether the user already redeemed the code
func (r *GiftRepository) HasClaimed(ctx context.Context, userID, codeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM gift_claims WHERE user_id = $1 AND code_id = $2)
	`, userID, codeID).Scan(&exists)
	return exists, err
}
