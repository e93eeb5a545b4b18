package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveSale(t *testing.T, repo *GormSaleRepository, shiftID int, day time.Time, product string, qty, rate int64, channel ledger.PaymentChannel) *sales.Sale {
	t.Helper()

	sale, err := sales.NewSale(shiftID, day, uuid.New(), product,
		decimal.NewFromInt(qty), decimal.NewFromInt(rate), channel, "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), sale))
	return sale
}

func saveCreditSale(t *testing.T, repo *GormCreditSaleRepository, shiftID int, day time.Time, account string, productID uuid.UUID, product string, qty, rate int64) *sales.CreditSale {
	t.Helper()

	sale, err := sales.NewCreditSale(shiftID, day, account, "Customer",
		productID, product, decimal.NewFromInt(qty), decimal.NewFromInt(rate), "DH-1234", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), sale))
	return sale
}

func TestGormSaleRepository_BankSalesTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	day := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	saveSale(t, repo, 1, day, "Octane", 10, 100, ledger.ChannelBank)
	saveSale(t, repo, 1, day, "Diesel", 5, 100, ledger.ChannelMobileBank)
	// Cash sales and other shifts stay out of the bank total
	saveSale(t, repo, 1, day, "Octane", 7, 100, ledger.ChannelCash)
	saveSale(t, repo, 2, day, "Octane", 99, 100, ledger.ChannelBank)

	total, err := repo.BankSalesTotal(ctx, 1, day)
	require.NoError(t, err)
	assert.Equal(t, "1500", total.String())

	empty, err := repo.BankSalesTotal(ctx, 3, day)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestGormSaleRepository_FindAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	day := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	sale := saveSale(t, repo, 1, day, "Octane", 10, 105, ledger.ChannelCash)
	saveSale(t, repo, 1, day, "Diesel", 3, 95, ledger.ChannelCash)

	rows, err := repo.FindByShift(ctx, 1, day)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	found, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "1050", found.Amount.String())

	require.NoError(t, repo.Delete(ctx, sale.ID))
	gone, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestGormCreditSaleRepository_Totals(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCreditSaleRepository(db)
	ctx := context.Background()

	day := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	octane := uuid.New()
	diesel := uuid.New()

	saveCreditSale(t, repo, 1, day, "AC10", octane, "Octane", 10, 100)
	saveCreditSale(t, repo, 1, day, "AC11", octane, "Octane", 5, 100)
	saveCreditSale(t, repo, 1, day, "AC10", diesel, "Diesel", 4, 90)
	saveCreditSale(t, repo, 2, day, "AC10", octane, "Octane", 50, 100)

	t.Run("total by shift", func(t *testing.T) {
		total, err := repo.TotalByShift(ctx, 1, day)
		require.NoError(t, err)
		assert.Equal(t, "1860", total.String())
	})

	t.Run("product breakdown groups and sums", func(t *testing.T) {
		breakdown, err := repo.ProductBreakdown(ctx, 1, day)
		require.NoError(t, err)
		require.Len(t, breakdown, 2)

		byName := map[string]sales.ProductTotal{}
		for _, row := range breakdown {
			byName[row.ProductName] = row
		}
		assert.Equal(t, "15", byName["Octane"].Quantity.String())
		assert.Equal(t, "1500", byName["Octane"].Amount.String())
		assert.Equal(t, "4", byName["Diesel"].Quantity.String())
		assert.Equal(t, "360", byName["Diesel"].Amount.String())
	})

	t.Run("empty shift sums to zero", func(t *testing.T) {
		total, err := repo.TotalByShift(ctx, 9, day)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestGormCreditSaleRepository_FindByAccountNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCreditSaleRepository(db)
	ctx := context.Background()

	day1 := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC)
	octane := uuid.New()

	later := saveCreditSale(t, repo, 2, day2, "AC10", octane, "Octane", 5, 100)
	earlier := saveCreditSale(t, repo, 1, day1, "AC10", octane, "Octane", 10, 100)
	saveCreditSale(t, repo, 1, day1, "AC11", octane, "Octane", 3, 100)

	rows, err := repo.FindByAccountNumber(ctx, "AC10", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, earlier.ID, rows[0].ID)
	assert.Equal(t, later.ID, rows[1].ID)

	windowed, err := repo.FindByAccountNumber(ctx, "AC10", day2, day2)
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, later.ID, windowed[0].ID)
}
