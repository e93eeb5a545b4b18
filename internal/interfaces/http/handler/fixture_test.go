package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	appledger "github.com/fuelstation/backend/internal/application/ledger"
	appsales "github.com/fuelstation/backend/internal/application/sales"
	appshift "github.com/fuelstation/backend/internal/application/shift"
	appvoucher "github.com/fuelstation/backend/internal/application/voucher"
	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/sales"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/fuelstation/backend/internal/domain/shift"
	"github.com/fuelstation/backend/internal/domain/voucher"
	"github.com/fuelstation/backend/internal/infrastructure/cache"
	"github.com/fuelstation/backend/internal/infrastructure/persistence"
	"github.com/fuelstation/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// apiFixture wires every handler over an in-memory store behind a real
// gin engine, so tests exercise routing, binding and error mapping together.
type apiFixture struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&ledger.Account{}, &ledger.Transaction{}, &voucher.Voucher{},
		&shift.Close{}, &shift.DispenserReading{}, &shift.DailyReading{},
		&sales.Sale{}, &sales.CreditSale{},
	))

	accounts := persistence.NewGormAccountRepository(db)
	transactions := persistence.NewGormTransactionRepository(db)
	vouchers := persistence.NewGormVoucherRepository(db)
	closes := persistence.NewGormShiftCloseRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	creditSales := persistence.NewGormCreditSaleRepository(db)

	accountService := appledger.NewAccountService(accounts, ledger.NewAccountNumberGenerator("AC"))
	queryService := appledger.NewQueryService(accounts, transactions, creditSales, vouchers)

	voucherEngine := appvoucher.NewEngine(persistence.NewGormVoucherTransactionScope(db))
	voucherEngine.SetIdempotencyStore(cache.NewInMemoryIdempotencyStore(), shared.DefaultIdempotencyConfig())

	closeService := appshift.NewCloseService(
		persistence.NewGormShiftTransactionScope(db),
		closes, saleRepo, creditSales, vouchers,
	)
	salesService := appsales.NewService(
		saleRepo, creditSales, accounts,
		appsales.NewLoggingStockNotifier(zap.NewNop()),
	)

	engine := gin.New()
	system := NewSystemHandler(nil)
	engine.GET("/healthz", system.Healthz)

	api := engine.Group("/api/v1")
	for _, h := range []interface {
		RegisterRoutes(rg *gin.RouterGroup)
	}{
		NewAccountHandler(accountService),
		NewVoucherHandler(voucherEngine),
		NewLedgerHandler(queryService),
		NewShiftHandler(closeService),
		NewSalesHandler(salesService),
		system,
	} {
		h.RegisterRoutes(api)
	}

	return &apiFixture{db: db, engine: engine}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return f.doWithHeaders(t, method, path, body, nil)
}

func (f *apiFixture) doWithHeaders(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is not an object: %v", resp.Data)
	return data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	resp := decodeResponse(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

// createAccount posts an account and returns its generated account number
func (f *apiFixture) createAccount(t *testing.T, name, accountType, opening string) string {
	t.Helper()

	w := f.do(t, http.MethodPost, "/api/v1/accounts", gin.H{
		"name":            name,
		"account_type":    accountType,
		"opening_balance": opening,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return dataField(t, w)["account_number"].(string)
}

// accountBalance reads an account back over the API and returns total_amount
func (f *apiFixture) accountBalance(t *testing.T, accountNumber string) string {
	t.Helper()

	w := f.do(t, http.MethodGet, "/api/v1/accounts/"+accountNumber, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return dataField(t, w)["total_amount"].(string)
}
