package domain

import "time"

// Withdrawal is a payout request. The amount is debited from the balance
// at submission (pessimistic hold); a rejection refunds it, an approval
// only marks the request.
type Withdrawal struct {
	ID            int64         `db:"id" json:"id"`
	UserID        int64         `db:"user_id" json:"user_id"`
	Amount        int64         `db:"amount" json:"amount"`
	Method        string        `db:"method" json:"method"`
	AccountNumber string        `db:"account_number" json:"account_number"`
	Status        RequestStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`

	// Joined from users for admin listings
	Phone string `db:"phone" json:"phone,omitempty"`
}
