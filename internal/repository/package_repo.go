package repository

import (
	"context"

	"github.com/imran12mia/hopweb/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PackageRepository struct {
	db *pgxpool.Pool
}

func NewPackageRepository(db *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{db: db}
}

// GetByID retrieves a package by id
func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, price, daily_earning, total_income, validity_days,
		       referral_commission, image_url, status
		FROM packages
		WHERE id = $1
	`, id)
	return scanPackage(row)
}

// ListActive returns the catalog visible to users
func (r *PackageRepository) ListActive(ctx context.Context) ([]domain.Package, error) {
	return r.list(ctx, `
		SELECT id, name, price, daily_earning, total_income, validity_days,
		       referral_commission, image_url, status
		FROM packages
		WHERE status = 'active'
		ORDER BY price ASC
	`)
}

// ListAll returns every package including inactive ones (admin view)
func (r *PackageRepository) ListAll(ctx context.Context) ([]domain.Package, error) {
	return r.list(ctx, `
		SELECT id, name, price, daily_earning, total_income, validity_days,
		       referral_commission, image_url, status
		FROM packages
		ORDER BY id ASC
	`)
}

// Create inserts a catalog item
func (r *PackageRepository) Create(ctx context.Context, p *domain.Package) error {
	if p.Status == "" {
		p.Status = domain.PackageActive
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO packages (name, price, daily_earning, total_income, validity_days,
		                      referral_commission, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.Name, p.Price, p.DailyEarning, p.TotalIncome, p.ValidityDays,
		p.ReferralCommission, p.ImageURL, p.Status).Scan(&p.ID)
}

// Update rewrites all editable fields of a catalog item
func (r *PackageRepository) Update(ctx context.Context, p *domain.Package) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE packages
		SET name = $2, price = $3, daily_earning = $4, total_income = $5,
		    validity_days = $6, referral_commission = $7, image_url = $8, status = $9
		WHERE id = $1
	`, p.ID, p.Name, p.Price, p.DailyEarning, p.TotalIncome,
		p.ValidityDays, p.ReferralCommission, p.ImageURL, p.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PackageRepository) list(ctx context.Context, query string) ([]domain.Package, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []domain.Package
	for rows.Next() {
		var p domain.Package
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.DailyEarning, &p.TotalIncome,
			&p.ValidityDays, &p.ReferralCommission, &p.ImageURL, &p.Status,
		); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func scanPackage(row pgx.Row) (*domain.Package, error) {
	var p domain.Package
	if err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.DailyEarning, &p.TotalIncome,
		&p.ValidityDays, &p.ReferralCommission, &p.ImageURL, &p.Status,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
