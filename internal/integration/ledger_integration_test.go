package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/imran12mia/hopweb/internal/domain"
	"github.com/imran12mia/hopweb/internal/repository"
	"github.com/imran12mia/hopweb/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	require.NoError(t, err)
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		require.NoError(t, err)
		_, err = db.Exec(context.Background(), string(b))
		require.NoErrorf(t, err, "apply migration %s", f.Name())
	}
}

func testDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

var seq atomic.Int64

// uniquePhone generates a phone that won't collide with earlier runs
// against the same database.
func uniquePhone() string {
	return fmt.Sprintf("019%08d", (time.Now().UnixNano()/1000+seq.Add(1))%100000000)
}

func uniqueCode(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

func createUser(t *testing.T, db *pgxpool.Pool, balance int64) *domain.User {
	t.Helper()
	u := &domain.User{Phone: uniquePhone(), PasswordHash: "not-a-real-hash"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	if balance != 0 {
		_, err := db.Exec(context.Background(),
			`UPDATE users SET balance = $1 WHERE id = $2`, balance, u.ID)
		require.NoError(t, err)
		u.Balance = balance
	}
	return u
}

func createPackage(t *testing.T, db *pgxpool.Pool, price, dailyEarning int64, validityDays int) *domain.Package {
	t.Helper()
	p := &domain.Package{
		Name:         uniqueCode("pkg"),
		Price:        price,
		DailyEarning: dailyEarning,
		ValidityDays: validityDays,
		Status:       domain.PackageActive,
	}
	require.NoError(t, repository.NewPackageRepository(db).Create(context.Background(), p))
	return p
}

func createGiftCode(t *testing.T, db *pgxpool.Pool, amount int64, maxClaims int) *domain.GiftCode {
	t.Helper()
	g := &domain.GiftCode{Code: uniqueCode("GIFT"), Amount: amount, MaxClaims: maxClaims}
	require.NoError(t, repository.NewGiftRepository(db).CreateCode(context.Background(), g))
	return g
}

func balanceOf(t *testing.T, db *pgxpool.Pool, userID int64) int64 {
	t.Helper()
	var balance int64
	require.NoError(t, db.QueryRow(context.Background(),
		`SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance))
	return balance
}

func TestPurchasePackage(t *testing.T) {
	db := testDB(t)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	pkg := createPackage(t, db, 500, 50, 30)

	t.Run("debits price and records purchase", func(t *testing.T) {
		user := createUser(t, db, 1200)

		up, balance, err := ledger.PurchasePackage(ctx, user.ID, pkg.ID)
		require.NoError(t, err)
		require.EqualValues(t, 700, balance)
		require.Equal(t, user.ID, up.UserID)
		require.Equal(t, pkg.ID, up.PackageID)
		require.WithinDuration(t, up.PurchasedAt.AddDate(0, 0, 30), up.ExpiresAt, time.Second)
		require.EqualValues(t, 700, balanceOf(t, db, user.ID))
	})

	t.Run("insufficient funds leaves no trace", func(t *testing.T) {
		user := createUser(t, db, 499)

		_, _, err := ledger.PurchasePackage(ctx, user.ID, pkg.ID)
		require.ErrorIs(t, err, service.ErrInsufficientFunds)
		require.EqualValues(t, 499, balanceOf(t, db, user.ID))

		var count int
		require.NoError(t, db.QueryRow(ctx,
			`SELECT count(*) FROM user_packages WHERE user_id = $1`, user.ID).Scan(&count))
		require.Zero(t, count)
	})

	t.Run("unknown package", func(t *testing.T) {
		user := createUser(t, db, 1000)
		_, _, err := ledger.PurchasePackage(ctx, user.ID, 99999999)
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("inactive package is invisible to buyers", func(t *testing.T) {
		inactive := createPackage(t, db, 100, 10, 7)
		inactive.Status = domain.PackageInactive
		require.NoError(t, repository.NewPackageRepository(db).Update(ctx, inactive))

		user := createUser(t, db, 1000)
		_, _, err := ledger.PurchasePackage(ctx, user.ID, inactive.ID)
		require.ErrorIs(t, err, service.ErrNotFound)
		require.EqualValues(t, 1000, balanceOf(t, db, user.ID))
	})
}

func TestClaimEarningCooldown(t *testing.T) {
	db := testDB(t)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	pkg := createPackage(t, db, 500, 50, 30)
	user := createUser(t, db, 1000)

	up, _, err := ledger.PurchasePackage(ctx, user.ID, pkg.ID)
	require.NoError(t, err)

	// Fresh purchase: cooldown starts at purchase time.
	_, _, err = ledger.ClaimEarning(ctx, user.ID, up.ID)
	require.ErrorIs(t, err, service.ErrCooldownActive)
	require.EqualValues(t, 500, balanceOf(t, db, user.ID))

	future := time.Now().Add(25 * time.Hour)
	ledger.SetClock(func() time.Time { return future })

	earning, balance, err := ledger.ClaimEarning(ctx, user.ID, up.ID)
	require.NoError(t, err)
	require.EqualValues(t, 50, earning)
	require.EqualValues(t, 550, balance)

	// Second claim at the same instant hits the refreshed cooldown.
	_, _, err = ledger.ClaimEarning(ctx, user.ID, up.ID)
	require.ErrorIs(t, err, service.ErrCooldownActive)
	require.EqualValues(t, 550, balanceOf(t, db, user.ID))

	// Another day passes.
	ledger.SetClock(func() time.Time { return future.Add(24 * time.Hour) })
	_, balance, err = ledger.ClaimEarning(ctx, user.ID, up.ID)
	require.NoError(t, err)
	require.EqualValues(t, 600, balance)
}

func TestClaimEarningOwnership(t *testing.T) {
	db := testDB(t)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	pkg := createPackage(t, db, 100, 10, 30)
	owner := createUser(t, db, 200)
	other := createUser(t, db, 200)

	up, _, err := ledger.PurchasePackage(ctx, owner.ID, pkg.ID)
	require.NoError(t, err)

	_, _, err = ledger.ClaimEarning(ctx, other.ID, up.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestDepositLifecycle(t *testing.T) {
	db := testDB(t)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	user := createUser(t, db, 0)

	txID := uniqueCode("TX")
	d, err := ledger.SubmitDeposit(ctx, user.ID, 500, txID, "bkash")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, d.Status)
	require.EqualValues(t, 0, balanceOf(t, db, user.ID), "submission must not credit")

	// Same transaction id again, even from another user.
	other := createUser(t, db, 0)
	_, err = ledger.SubmitDeposit(ctx, other.ID, 500, txID, "nagad")
	require.ErrorIs(t, err, service.ErrDuplicateTransaction)
	require.EqualValues(t, 0, balanceOf(t, db, other.ID))

	approved, err := ledger.ReviewDeposit(ctx, d.ID, true)
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, approved.Status)
	require.EqualValues(t, 500, balanceOf(t, db, user.ID))

	// Terminal: a second review must not double-credit.
	_, err = ledger.ReviewDeposit(ctx, d.ID, true)
	require.ErrorIs(t, err, service.ErrInvalidState)
	_, err = ledger.ReviewDeposit(ctx, d.ID, false)
	require.ErrorIs(t, err, service.ErrInvalidState)
	require.EqualValues(t, 500, balanceOf(t, db, user.ID))

	// Rejected deposits never touch the balance.
	d2, err := ledger.SubmitDeposit(ctx, user.ID, 300, uniqueCode("TX"), "bkash")
	require.NoError(t, err)
	rejected, err := ledger.ReviewDeposit(ctx, d2.ID, false)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, rejected.Status)
	require.EqualValues(t, 500, balanceOf(t, db, user.ID))

	_, err = ledger.SubmitDeposit(ctx, user.ID, 0, uniqueCode("TX"), "bkash")
	require.ErrorIs(t, err, service.ErrInvalidAmount)
}

func TestWithdrawalLifecycle(t *testing.T) {
	db := testDB(t)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	user := createUser(t, db, 1000)

	w, balance, err := ledger.SubmitWithdrawal(ctx, user.ID, 200, "bkash", "01900000001")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, w.Status)
	require.EqualValues(t, 800, balance, "amount is held at submission")

	// Rejection refunds the hold.
	rejected, err := ledger.ReviewWithdrawal(ctx, w.ID, false)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, rejected.Status)
	require.EqualValues(t, 1000, balanceOf(t, db, user.ID))

	// Terminal: no further transitions, no double refund.
	_, err = ledger.ReviewWithdrawal(ctx, w.ID, false)
	require.ErrorIs(t, err, service.ErrInvalidState)
	_, err = ledger.ReviewWithdrawal(ctx, w.ID, true)
	require.ErrorIs(t, err, service.ErrInvalidState)
	require.EqualValues(t, 1000, balanceOf(t, db, user.ID))

	// Approval keeps the money debited.
	w2, balance, err := ledger.SubmitWithdrawal(ctx, user.ID, 300, "nagad", "01900000002")
	require.NoError(t, err)
	require.EqualValues(t, 700, balance)
	approved, err := ledger.ReviewWithdrawal(ctx, w2.ID, true)
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, approved.Status)
	require.EqualValues(t, 700, balanceOf(t, db, user.ID))

	// Held funds can't be withdrawn twice.
	_, _, err = ledger.SubmitWithdrawal(ctx, user.ID, 800, "bkash", "01900000003")
	require.ErrorIs(t, err, service.ErrInsufficientFunds)
	require.EqualValues(t, 700, balanceOf(t, db, user.ID))
}

func TestGiftRedemption(t *testing.T) {
	db := testDB(t)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	gift := createGiftCode(t, db, 100, 2)
	alice := createUser(t, db, 0)
	bob := createUser(t, db, 0)
	carol := createUser(t, db, 0)

	amount, balance, err := ledger.RedeemGiftCode(ctx, alice.ID, gift.Code)
	require.NoError(t, err)
	require.EqualValues(t, 100, amount)
	require.EqualValues(t, 100, balance)

	// Once per user.
	_, _, err = ledger.RedeemGiftCode(ctx, alice.ID, gift.Code)
	require.ErrorIs(t, err, service.ErrAlreadyClaimed)
	require.EqualValues(t, 100, balanceOf(t, db, alice.ID))

	_, _, err = ledger.RedeemGiftCode(ctx, bob.ID, gift.Code)
	require.NoError(t, err)

	// Cap reached.
	_, _, err = ledger.RedeemGiftCode(ctx, carol.ID, gift.Code)
	require.ErrorIs(t, err, service.ErrCodeExhausted)
	require.EqualValues(t, 0, balanceOf(t, db, carol.ID))

	stored, err := repository.NewGiftRepository(db).GetByCode(ctx, gift.Code)
	require.NoError(t, err)
	require.Equal(t, 2, stored.ClaimedCount)

	_, _, err = ledger.RedeemGiftCode(ctx, alice.ID, uniqueCode("MISSING"))
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestGiftRedemptionConcurrent(t *testing.T) {
	db := testDB(t)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	const users = 8
	const maxClaims = 3

	gift := createGiftCode(t, db, 50, maxClaims)
	ids := make([]int64, users)
	for i := range ids {
		ids[i] = createUser(t, db, 0).ID
	}

	var wg sync.WaitGroup
	errs := make([]error, users)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, _, errs[i] = ledger.RedeemGiftCode(ctx, id, gift.Code)
		}(i, id)
	}
	wg.Wait()

	var ok, exhausted int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, service.ErrCodeExhausted)
			exhausted++
		}
	}
	require.Equal(t, maxClaims, ok)
	require.Equal(t, users-maxClaims, exhausted)

	stored, err := repository.NewGiftRepository(db).GetByCode(ctx, gift.Code)
	require.NoError(t, err)
	require.Equal(t, maxClaims, stored.ClaimedCount)
}

func TestGiftDoubleClaimConcurrent(t *testing.T) {
	db := testDB(t)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	gift := createGiftCode(t, db, 75, 100)
	user := createUser(t, db, 0)

	const attempts = 4
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = ledger.RedeemGiftCode(ctx, user.ID, gift.Code)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, service.ErrAlreadyClaimed)
		}
	}
	require.Equal(t, 1, ok, "exactly one attempt may credit")
	require.EqualValues(t, 75, balanceOf(t, db, user.ID))

	stored, err := repository.NewGiftRepository(db).GetByCode(ctx, gift.Code)
	require.NoError(t, err)
	require.Equal(t, 1, stored.ClaimedCount)
}

func TestAdjustBalance(t *testing.T) {
	db := testDB(t)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	user := createUser(t, db, 100)

	balance, err := ledger.AdjustBalance(ctx, user.ID, 400)
	require.NoError(t, err)
	require.EqualValues(t, 500, balance)

	balance, err = ledger.AdjustBalance(ctx, user.ID, -200)
	require.NoError(t, err)
	require.EqualValues(t, 300, balance)

	_, err = ledger.AdjustBalance(ctx, user.ID, -301)
	require.ErrorIs(t, err, service.ErrInsufficientFunds)
	require.EqualValues(t, 300, balanceOf(t, db, user.ID))

	_, err = ledger.AdjustBalance(ctx, user.ID, 0)
	require.ErrorIs(t, err, service.ErrInvalidAmount)

	_, err = ledger.AdjustBalance(ctx, 99999999, 100)
	require.ErrorIs(t, err, service.ErrNotFound)
}
