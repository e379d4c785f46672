package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/imran12mia/hopweb/internal/config"
	"github.com/imran12mia/hopweb/internal/domain"
	apihttp "github.com/imran12mia/hopweb/internal/http"
	"github.com/imran12mia/hopweb/internal/repository"
	"github.com/imran12mia/hopweb/internal/service"
	"github.com/imran12mia/hopweb/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, db *pgxpool.Pool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service.SetJWTSecret("e2e-secret")

	// Limits high enough to never trip during a test run.
	cfg := &config.Config{
		APIRateLimit:   100000,
		APIRateWindow:  time.Minute,
		AuthRateLimit:  100000,
		AuthRateWindow: time.Minute,
	}

	hub := ws.NewHub()
	go hub.Run()

	r := gin.New()
	apihttp.RegisterRoutes(r, db, cfg, hub)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// createAdmin registers an admin account directly and logs in over HTTP.
func createAdmin(t *testing.T, db *pgxpool.Pool, r *gin.Engine) string {
	t.Helper()
	hash, err := service.HashPassword("admin-secret")
	require.NoError(t, err)
	admin := &domain.User{Phone: uniquePhone(), PasswordHash: hash, Role: domain.RoleAdmin}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), admin))

	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"phone": admin.Phone, "password": "admin-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func registerUser(t *testing.T, r *gin.Engine) (phone, token string) {
	t.Helper()
	phone = uniquePhone()
	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"phone": phone, "password": "user-secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return phone, resp.Token
}

func meBalance(t *testing.T, r *gin.Engine, token string) int64 {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Balance int64 `json:"balance"`
	}
	decode(t, w, &resp)
	return resp.Balance
}

func TestAPIAuth(t *testing.T) {
	db := testDB(t)
	r := newTestRouter(t, db)

	phone, token := registerUser(t, r)

	// Duplicate registration is refused.
	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"phone": phone, "password": "another-secret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Wrong password.
	w = doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"phone": phone, "password": "wrong-secret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Protected route without a token.
	w = doJSON(t, r, http.MethodGet, "/api/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// A regular user can't reach the admin surface.
	w = doJSON(t, r, http.MethodGet, "/api/admin/users", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAPIDepositFlow(t *testing.T) {
	db := testDB(t)
	r := newTestRouter(t, db)

	_, userToken := registerUser(t, r)
	adminToken := createAdmin(t, db, r)

	require.EqualValues(t, 0, meBalance(t, r, userToken))

	txID := uniqueCode("TX")
	w := doJSON(t, r, http.MethodPost, "/api/deposit", userToken, gin.H{
		"amount": 500, "transaction_id": txID, "method": "bkash",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var submitResp struct {
		Deposit domain.Deposit `json:"deposit"`
	}
	decode(t, w, &submitResp)
	require.Equal(t, domain.StatusPending, submitResp.Deposit.Status)

	// Balance is untouched until review.
	require.EqualValues(t, 0, meBalance(t, r, userToken))

	// Re-submitting the same transaction id is refused.
	w = doJSON(t, r, http.MethodPost, "/api/deposit", userToken, gin.H{
		"amount": 500, "transaction_id": txID, "method": "bkash",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Admin approves.
	w = doJSON(t, r, http.MethodPost, "/api/admin/deposits/action", adminToken, gin.H{
		"id": submitResp.Deposit.ID, "action": "approve",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 500, meBalance(t, r, userToken))

	// A second review of the same deposit fails and doesn't re-credit.
	w = doJSON(t, r, http.MethodPost, "/api/admin/deposits/action", adminToken, gin.H{
		"id": submitResp.Deposit.ID, "action": "approve",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.EqualValues(t, 500, meBalance(t, r, userToken))
}

func TestAPIPackageAndGiftFlow(t *testing.T) {
	db := testDB(t)
	r := newTestRouter(t, db)

	_, userToken := registerUser(t, r)
	adminToken := createAdmin(t, db, r)

	// Admin creates a catalog item and a gift code.
	w := doJSON(t, r, http.MethodPost, "/api/admin/packages", adminToken, gin.H{
		"name": uniqueCode("pkg"), "price": 300, "daily_earning": 30, "validity_days": 30,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var pkgResp struct {
		Package domain.Package `json:"package"`
	}
	decode(t, w, &pkgResp)

	giftCode := uniqueCode("GIFT")
	w = doJSON(t, r, http.MethodPost, "/api/admin/gift-codes", adminToken, gin.H{
		"code": giftCode, "amount": 100, "max_claims": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Broke user can't buy.
	w = doJSON(t, r, http.MethodPost, "/api/buy-package", userToken, gin.H{
		"package_id": pkgResp.Package.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Admin funds the account, then the purchase goes through.
	var meResp struct {
		ID int64 `json:"id"`
	}
	wMe := doJSON(t, r, http.MethodGet, "/api/me", userToken, nil)
	require.Equal(t, http.StatusOK, wMe.Code)
	decode(t, wMe, &meResp)

	w = doJSON(t, r, http.MethodPost, "/api/admin/users/update-balance", adminToken, gin.H{
		"user_id": meResp.ID, "amount": 500, "type": "add",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/buy-package", userToken, gin.H{
		"package_id": pkgResp.Package.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 200, meBalance(t, r, userToken))

	var buyResp struct {
		Purchase domain.UserPackage `json:"purchase"`
	}
	decode(t, w, &buyResp)

	// Earnings can't be claimed on the day of purchase.
	w = doJSON(t, r, http.MethodPost, "/api/claim-earning", userToken, gin.H{
		"user_package_id": buyResp.Purchase.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Gift code works once.
	w = doJSON(t, r, http.MethodPost, "/api/claim-gift", userToken, gin.H{"code": giftCode})
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 300, meBalance(t, r, userToken))

	w = doJSON(t, r, http.MethodPost, "/api/claim-gift", userToken, gin.H{"code": giftCode})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.EqualValues(t, 300, meBalance(t, r, userToken))
}
