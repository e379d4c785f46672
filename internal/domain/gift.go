package domain

import "time"

// GiftCode is a one-time reward code with a claim cap.
type GiftCode struct {
	ID           int64     `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Amount       int64     `db:"amount" json:"amount"`
	MaxClaims    int       `db:"max_claims" json:"max_claims"`
	ClaimedCount int       `db:"claimed_count" json:"claimed_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Exhausted reports whether the code has reached its claim cap.
func (g *GiftCode) Exhausted() bool {
	return g.ClaimedCount >= g.MaxClaims
}

// GiftClaim records that a user redeemed a code. The (user_id, code_id)
// pair is unique, which is the double-claim guard.
type GiftClaim struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CodeID    int64     `db:"code_id" json:"code_id"`
	ClaimedAt time.Time `db:"claimed_at" json:"claimed_at"`
}
