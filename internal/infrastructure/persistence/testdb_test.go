package persistence

import (
	"testing"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/sales"
	"github.com/fuelstation/backend/internal/domain/shift"
	"github.com/fuelstation/backend/internal/domain/voucher"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&ledger.Account{},
		&ledger.Transaction{},
		&voucher.Voucher{},
		&shift.Close{},
		&shift.DispenserReading{},
		&shift.DailyReading{},
		&sales.Sale{},
		&sales.CreditSale{},
	)
	require.NoError(t, err)

	return db
}

// mustAccount creates and saves an account for tests
func mustAccount(t *testing.T, db *gorm.DB, number, name string, accountType ledger.AccountType) *ledger.Account {
	t.Helper()

	account, err := ledger.NewAccount(number, name, "Test Group", accountType, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, db.Create(account).Error)
	return account
}
