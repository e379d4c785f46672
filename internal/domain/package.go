package domain

import "time"

// ClaimCooldown is the minimum gap between two earning claims on the
// same purchased package.
const ClaimCooldown = 24 * time.Hour

type PackageStatus string

const (
	PackageActive   PackageStatus = "active"
	PackageInactive PackageStatus = "inactive"
)

// Package is a catalog item sold to users. TotalIncome and
// ReferralCommission are stored but not acted on by any operation.
type Package struct {
	ID                 int64         `db:"id" json:"id"`
	Name               string        `db:"name" json:"name"`
	Price              int64         `db:"price" json:"price"`
	DailyEarning       int64         `db:"daily_earning" json:"daily_earning"`
	TotalIncome        int64         `db:"total_income" json:"total_income"`
	ValidityDays       int           `db:"validity_days" json:"validity_days"`
	ReferralCommission int64         `db:"referral_commission" json:"referral_commission"`
	ImageURL           string        `db:"image_url" json:"image_url"`
	Status             PackageStatus `db:"status" json:"status"`
}

// UserPackage is one purchase of a package by a user.
type UserPackage struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	PackageID   int64     `db:"package_id" json:"package_id"`
	PurchasedAt time.Time `db:"purchased_at" json:"purchased_at"`
	ExpiresAt   time.Time `db:"expires_at" json:"expires_at"`
	LastClaimAt time.Time `db:"last_claim_at" json:"last_claim_at"`

	// Joined from packages for listings
	PackageName  string `db:"name" json:"name,omitempty"`
	DailyEarning int64  `db:"daily_earning" json:"daily_earning,omitempty"`
	TotalIncome  int64  `db:"total_income" json:"total_income,omitempty"`
}

// NextClaimAt returns the earliest time another earning claim is allowed.
func (up *UserPackage) NextClaimAt() time.Time {
	return up.LastClaimAt.Add(ClaimCooldown)
}

// ClaimableAt reports whether the claim cooldown has elapsed at now.
func (up *UserPackage) ClaimableAt(now time.Time) bool {
	return !now.Before(up.NextClaimAt())
}

// ExpiredAt reports whether the package validity has run out at now.
func (up *UserPackage) ExpiredAt(now time.Time) bool {
	return now.After(up.ExpiresAt)
}
