package repository

import (
	"context"

	"github.com/imran12mia/hopweb/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DepositRepository struct {
	db *pgxpool.Pool
}

func NewDepositRepository(db *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{db: db}
}

// GetByID retrieves a deposit by id
func (r *DepositRepository) GetByID(ctx context.Context, id int64) (*domain.Deposit, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, amount, transaction_id, method, status, created_at
		FROM deposits
		WHERE id = $1
	`, id)

	var d domain.Deposit
	if err := row.Scan(&d.ID, &d.UserID, &d.Amount, &d.TransactionID, &d.Method, &d.Status, &d.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// ListByUser returns a user's deposit history, newest first
func (r *DepositRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Deposit, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, amount, transaction_id, method, status, created_at
		FROM deposits
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []domain.Deposit
	for rows.Next() {
		var d domain.Deposit
		if err := rows.Scan(&d.ID, &d.UserID, &d.Amount, &d.TransactionID, &d.Method, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}

// ListAll returns every deposit joined with the requester's phone
// (admin review queue), newest first
func (r *DepositRepository) ListAll(ctx context.Context) ([]domain.Deposit, error) {
	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.user_id, d.amount, d.transaction_id, d.method, d.status, d.created_at, u.phone
		FROM deposits d
		JOIN users u ON d.user_id = u.id
		ORDER BY d.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []domain.Deposit
	for rows.Next() {
		var d domain.Deposit
		if err := rows.Scan(&d.ID, &d.UserID, &d.Amount, &d.TransactionID, &d.Method, &d.Status, &d.CreatedAt, &d.Phone); err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}
