package service

import (
	"context"
	"errors"
	"time"

	"github.com/imran12mia/hopweb/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// LedgerService owns every mutation of users.balance. Each operation is a
// single transaction: the user row (and the companion request/code row) is
// locked with FOR UPDATE before eligibility checks, so concurrent
// operations on the same rows serialize and a failure leaves no partial
// effects.
type LedgerService struct {
	db *pgxpool.Pool

	// now is swappable in tests to exercise the claim cooldown.
	now func() time.Time
}

// NewLedgerService creates a ledger service over the shared pool.
func NewLedgerService(db *pgxpool.Pool) *LedgerService {
	return &LedgerService{db: db, now: time.Now}
}

// SetClock replaces the time source. Test hook only.
func (s *LedgerService) SetClock(now func() time.Time) {
	s.now = now
}

// PurchasePackage debits the package price and records the purchase.
// The package must exist and be active; inactive packages are invisible
// to buyers and report ErrNotFound.
func (s *LedgerService) PurchasePackage(ctx context.Context, userID, packageID int64) (*domain.UserPackage, int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var price int64
	var validityDays int
	err = tx.QueryRow(ctx, `
		SELECT price, validity_days FROM packages
		WHERE id = $1 AND status = 'active'
	`, packageID).Scan(&price, &validityDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	if balance < price {
		return nil, 0, ErrInsufficientFunds
	}

	var newBalance int64
	if err := tx.QueryRow(ctx,
		`UPDATE users SET balance = balance - $1 WHERE id = $2 RETURNING balance`,
		price, userID,
	).Scan(&newBalance); err != nil {
		return nil, 0, err
	}

	now := s.now()
	up := &domain.UserPackage{
		UserID:      userID,
		PackageID:   packageID,
		PurchasedAt: now,
		ExpiresAt:   now.AddDate(0, 0, validityDays),
		LastClaimAt: now,
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO user_packages (user_id, package_id, purchased_at, expires_at, last_claim_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, up.UserID, up.PackageID, up.PurchasedAt, up.ExpiresAt, up.LastClaimAt).Scan(&up.ID); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return up, newBalance, nil
}

// ClaimEarning credits the package's daily earning if the 24h cooldown
// has elapsed, and advances last_claim_at.
func (s *LedgerService) ClaimEarning(ctx context.Context, userID, userPackageID int64) (earning, newBalance int64, err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lastClaimAt time.Time
	err = tx.QueryRow(ctx, `
		SELECT up.last_claim_at, p.daily_earning
		FROM user_packages up
		JOIN packages p ON up.package_id = p.id
		WHERE up.id = $1 AND up.user_id = $2
		FOR UPDATE OF up
	`, userPackageID, userID).Scan(&lastClaimAt, &earning)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}

	now := s.now()
	if now.Sub(lastClaimAt) < domain.ClaimCooldown {
		return 0, 0, ErrCooldownActive
	}

	if err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		earning, userID,
	).Scan(&newBalance); err != nil {
		return 0, 0, err
	}

	if _, err = tx.Exec(ctx,
		`UPDATE user_packages SET last_claim_at = $1 WHERE id = $2`,
		now, userPackageID,
	); err != nil {
		return 0, 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return earning, newBalance, nil
}

// SubmitDeposit records a pending funding request. The unique constraint
// on transaction_id is the double-submission guard; balance is untouched
// until approval.
func (s *LedgerService) SubmitDeposit(ctx context.Context, userID, amount int64, transactionID, method string) (*domain.Deposit, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	d := &domain.Deposit{
		UserID:        userID,
		Amount:        amount,
		TransactionID: transactionID,
		Method:        method,
		Status:        domain.StatusPending,
	}
	err := s.db.QueryRow(ctx, `
		INSERT INTO deposits (user_id, amount, transaction_id, method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, d.UserID, d.Amount, d.TransactionID, d.Method, d.Status).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTransaction
		}
		return nil, err
	}
	return d, nil
}

// ReviewDeposit approves or rejects a pending deposit. Approval credits
// the depositor's balance; rejection changes status only. Both paths are
// terminal.
func (s *LedgerService) ReviewDeposit(ctx context.Context, depositID int64, approve bool) (*domain.Deposit, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var d domain.Deposit
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, amount, transaction_id, method, status, created_at
		FROM deposits
		WHERE id = $1
		FOR UPDATE
	`, depositID).Scan(&d.ID, &d.UserID, &d.Amount, &d.TransactionID, &d.Method, &d.Status, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	next := domain.StatusRejected
	if approve {
		next = domain.StatusApproved
	}
	if !d.Status.CanTransition(next) {
		return nil, ErrInvalidState
	}

	if approve {
		if _, err = tx.Exec(ctx,
			`UPDATE users SET balance = balance + $1 WHERE id = $2`,
			d.Amount, d.UserID,
		); err != nil {
			return nil, err
		}
	}

	if _, err = tx.Exec(ctx,
		`UPDATE deposits SET status = $1 WHERE id = $2`,
		next, d.ID,
	); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	d.Status = next
	return &d, nil
}

// SubmitWithdrawal debits the amount immediately and records a pending
// payout request, so pending funds cannot be spent twice.
func (s *LedgerService) SubmitWithdrawal(ctx context.Context, userID, amount int64, method, accountNumber string) (*domain.Withdrawal, int64, error) {
	if amount <= 0 {
		return nil, 0, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	if balance < amount {
		return nil, 0, ErrInsufficientFunds
	}

	var newBalance int64
	if err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance - $1 WHERE id = $2 RETURNING balance`,
		amount, userID,
	).Scan(&newBalance); err != nil {
		return nil, 0, err
	}

	w := &domain.Withdrawal{
		UserID:        userID,
		Amount:        amount,
		Method:        method,
		AccountNumber: accountNumber,
		Status:        domain.StatusPending,
	}
	if err = tx.QueryRow(ctx, `
		INSERT INTO withdrawals (user_id, amount, method, account_number, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, w.UserID, w.Amount, w.Method, w.AccountNumber, w.Status).Scan(&w.ID, &w.CreatedAt); err != nil {
		return nil, 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return w, newBalance, nil
}

// ReviewWithdrawal approves or rejects a pending withdrawal. Funds were
// already held at submission, so approval changes status only while
// rejection refunds the amount.
func (s *LedgerService) ReviewWithdrawal(ctx context.Context, withdrawalID int64, approve bool) (*domain.Withdrawal, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var w domain.Withdrawal
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, amount, method, account_number, status, created_at
		FROM withdrawals
		WHERE id = $1
		FOR UPDATE
	`, withdrawalID).Scan(&w.ID, &w.UserID, &w.Amount, &w.Method, &w.AccountNumber, &w.Status, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	next := domain.StatusRejected
	if approve {
		next = domain.StatusApproved
	}
	if !w.Status.CanTransition(next) {
		return nil, ErrInvalidState
	}

	if !approve {
		if _, err = tx.Exec(ctx,
			`UPDATE users SET balance = balance + $1 WHERE id = $2`,
			w.Amount, w.UserID,
		); err != nil {
			return nil, err
		}
	}

	if _, err = tx.Exec(ctx,
		`UPDATE withdrawals SET status = $1 WHERE id = $2`,
		next, w.ID,
	); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	w.Status = next
	return &w, nil
}

// RedeemGiftCode credits the code amount once per user. The unique
// (user_id, code_id) constraint is the double-claim guard; the code row
// lock serializes concurrent redemptions so claimed_count never passes
// max_claims.
func (s *LedgerService) RedeemGiftCode(ctx context.Context, userID int64, code string) (amount, newBalance int64, err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var codeID int64
	var claimedCount, maxClaims int
	err = tx.QueryRow(ctx, `
		SELECT id, amount, max_claims, claimed_count
		FROM gift_codes
		WHERE code = $1
		FOR UPDATE
	`, code).Scan(&codeID, &amount, &maxClaims, &claimedCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}
	if claimedCount >= maxClaims {
		return 0, 0, ErrCodeExhausted
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO gift_claims (user_id, code_id) VALUES ($1, $2)`,
		userID, codeID,
	); err != nil {
		if isUniqueViolation(err) {
			return 0, 0, ErrAlreadyClaimed
		}
		return 0, 0, err
	}

	if _, err = tx.Exec(ctx,
		`UPDATE gift_codes SET claimed_count = claimed_count + 1 WHERE id = $1`,
		codeID,
	); err != nil {
		return 0, 0, err
	}

	if err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		amount, userID,
	).Scan(&newBalance); err != nil {
		return 0, 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return amount, newBalance, nil
}

// AdjustBalance applies a signed admin correction. Debits that would take
// the balance negative are refused.
func (s *LedgerService) AdjustBalance(ctx context.Context, userID, delta int64) (int64, error) {
	if delta == 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if balance+delta < 0 {
		return 0, ErrInsufficientFunds
	}

	var newBalance int64
	if err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		delta, userID,
	).Scan(&newBalance); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBalance, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
