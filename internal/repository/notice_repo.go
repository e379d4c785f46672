package repository

import (
	"context"

	"github.com/imran12mia/hopweb/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NoticeRepository struct {
	db *pgxpool.Pool
}

func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// ListRecent returns the newest notices first, capped at limit
func (r *NoticeRepository) ListRecent(ctx context.Context, limit int) ([]domain.Notice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, content, created_at
		FROM notices
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []domain.Notice
	for rows.Next() {
		var n domain.Notice
		if err := rows.Scan(&n.ID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// Create appends a broadcast notice
func (r *NoticeRepository) Create(ctx context.Context, n *domain.Notice) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO notices (content)
		VALUES ($1)
		RETURNING id, created_at
	`, n.Content).Scan(&n.ID, &n.CreatedAt)
}
