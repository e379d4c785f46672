package domain

import "time"

// Deposit is a funding request. TransactionID is the externally supplied
// payment receipt id and is globally unique. Balance is credited only when
// an admin approves.
type Deposit struct {
	ID            int64         `db:"id" json:"id"`
	UserID        int64         `db:"user_id" json:"user_id"`
	Amount        int64         `db:"amount" json:"amount"`
	TransactionID string        `db:"transaction_id" json:"transaction_id"`
	Method        string        `db:"method" json:"method"`
	Status        RequestStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`

	// Joined from users for admin listings
	Phone string `db:"phone" json:"phone,omitempty"`
}
