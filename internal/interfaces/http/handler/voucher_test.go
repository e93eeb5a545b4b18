package handler

import (
	"net/http"
	"testing"

	"github.com/fuelstation/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentBody(from, to, amount string) gin.H {
	return gin.H{
		"category":     "SUPPLIER",
		"sub_type":     "SUPPLIER_PAYMENT",
		"from_account": from,
		"to_account":   to,
		"amount":       amount,
		"channel":      "CASH",
		"voucher_date": "2024-09-01",
	}
}

func TestVoucherHandler_CreatePayment(t *testing.T) {
	f := newAPIFixture(t)
	payer := f.createAccount(t, "Till Cash", "CASH", "1000")
	payee := f.createAccount(t, "Fuel Supplier", "PAYABLE", "0")

	t.Run("posts payment and moves both balances", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/vouchers/payment", paymentBody(payer, payee, "300"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		data := dataField(t, w)
		assert.Equal(t, "PAYMENT", data["voucher_type"])
		assert.Equal(t, "300", data["amount"])
		assert.NotEmpty(t, data["transaction_id"])

		assert.Equal(t, "700", f.accountBalance(t, payer))
		assert.Equal(t, "300", f.accountBalance(t, payee))
	})

	t.Run("unknown payee maps to 404 and posts nothing", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/vouchers/payment", paymentBody(payer, "AC99999999999", "100"))
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeAccountNotFound, errorCode(t, w))
		assert.Equal(t, "700", f.accountBalance(t, payer))
	})

	t.Run("rejects malformed amount", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/vouchers/payment", paymentBody(payer, payee, "a lot"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing voucher date", func(t *testing.T) {
		body := paymentBody(payer, payee, "50")
		delete(body, "voucher_date")
		w := f.do(t, http.MethodPost, "/api/v1/vouchers/payment", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVoucherHandler_CreateReceipt(t *testing.T) {
	f := newAPIFixture(t)
	customer := f.createAccount(t, "Transport Co", "RECEIVABLE", "1000")
	till := f.createAccount(t, "Till Cash", "CASH", "0")

	w := f.do(t, http.MethodPost, "/api/v1/vouchers/received", gin.H{
		"category":     "CUSTOMER",
		"sub_type":     "CUSTOMER_RECEIPT",
		"from_account": customer,
		"to_account":   till,
		"amount":       "400",
		"voucher_date": "2024-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "RECEIPT", dataField(t, w)["voucher_type"])

	// A receipt credits the paying side
	assert.Equal(t, "1400", f.accountBalance(t, customer))
}

func TestVoucherHandler_CreateOfficePayment(t *testing.T) {
	f := newAPIFixture(t)
	till := f.createAccount(t, "Till Cash", "CASH", "1000")
	expense := f.createAccount(t, "Office Expense", "OTHER", "0")

	w := f.do(t, http.MethodPost, "/api/v1/office-payments", gin.H{
		"from_account": till,
		"to_account":   expense,
		"amount":       "150",
		"voucher_date": "2024-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := dataField(t, w)
	assert.Equal(t, "PAYMENT", data["voucher_type"])
	assert.Equal(t, "OFFICE", data["category"])
	assert.Equal(t, "OFFICE_PAYMENT", data["sub_type"])
	assert.Equal(t, "850", f.accountBalance(t, till))
}

func TestVoucherHandler_IdempotencyKey(t *testing.T) {
	f := newAPIFixture(t)
	payer := f.createAccount(t, "Till Cash", "CASH", "1000")
	payee := f.createAccount(t, "Fuel Supplier", "PAYABLE", "0")

	headers := map[string]string{"X-Idempotency-Key": "post-once"}

	w := f.doWithHeaders(t, http.MethodPost, "/api/v1/vouchers/payment", paymentBody(payer, payee, "100"), headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.doWithHeaders(t, http.MethodPost, "/api/v1/vouchers/payment", paymentBody(payer, payee, "100"), headers)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, dto.ErrCodeAlreadyExists, errorCode(t, w))

	// Only the first post moved money
	assert.Equal(t, "900", f.accountBalance(t, payer))
}

func TestVoucherHandler_UpdateAndDelete(t *testing.T) {
	f := newAPIFixture(t)
	payer := f.createAccount(t, "Till Cash", "CASH", "1000")
	payee := f.createAccount(t, "Fuel Supplier", "PAYABLE", "0")

	w := f.do(t, http.MethodPost, "/api/v1/vouchers/payment", paymentBody(payer, payee, "300"))
	require.Equal(t, http.StatusCreated, w.Code)
	voucherID := dataField(t, w)["id"].(string)

	t.Run("update reverses then reapplies", func(t *testing.T) {
		body := paymentBody(payer, payee, "450")
		w := f.do(t, http.MethodPut, "/api/v1/vouchers/"+voucherID, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		assert.Equal(t, "450", dataField(t, w)["amount"])
		assert.Equal(t, "550", f.accountBalance(t, payer))
		assert.Equal(t, "450", f.accountBalance(t, payee))
	})

	t.Run("update without channel defaults to cash", func(t *testing.T) {
		body := paymentBody(payer, payee, "450")
		delete(body, "channel")
		w := f.do(t, http.MethodPut, "/api/v1/vouchers/"+voucherID, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "CASH", dataField(t, w)["channel"])
	})

	t.Run("update of unknown voucher maps to 404", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/api/v1/vouchers/11111111-2222-3333-4444-555555555555", paymentBody(payer, payee, "10"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update rejects malformed id", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/api/v1/vouchers/not-a-uuid", paymentBody(payer, payee, "10"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete restores both balances", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, "/api/v1/vouchers/"+voucherID, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		assert.Equal(t, "1000", f.accountBalance(t, payer))
		assert.Equal(t, "0", f.accountBalance(t, payee))
	})
}

func TestVoucherHandler_BulkDelete(t *testing.T) {
	f := newAPIFixture(t)
	payer := f.createAccount(t, "Till Cash", "CASH", "1000")
	payee := f.createAccount(t, "Fuel Supplier", "PAYABLE", "0")

	var ids []string
	for _, amount := range []string{"100", "200"} {
		w := f.do(t, http.MethodPost, "/api/v1/vouchers/payment", paymentBody(payer, payee, amount))
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, dataField(t, w)["id"].(string))
	}

	t.Run("batch with unknown id removes nothing", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/vouchers/bulk-delete", gin.H{
			"ids": []string{ids[0], "11111111-2222-3333-4444-555555555555"},
		})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "700", f.accountBalance(t, payer))
	})

	t.Run("full batch restores balances", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/vouchers/bulk-delete", gin.H{"ids": ids})
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "1000", f.accountBalance(t, payer))
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/vouchers/bulk-delete", gin.H{"ids": []string{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVoucherHandler_List(t *testing.T) {
	f := newAPIFixture(t)
	payer := f.createAccount(t, "Till Cash", "CASH", "1000")
	payee := f.createAccount(t, "Fuel Supplier", "PAYABLE", "0")

	w := f.do(t, http.MethodPost, "/api/v1/vouchers/payment", paymentBody(payer, payee, "100"))
	require.Equal(t, http.StatusCreated, w.Code)
	w = f.do(t, http.MethodPost, "/api/v1/vouchers/received", gin.H{
		"category":     "CUSTOMER",
		"sub_type":     "CUSTOMER_RECEIPT",
		"from_account": payee,
		"to_account":   payer,
		"amount":       "50",
		"voucher_date": "2024-09-02",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("filters by type", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/vouchers?type=PAYMENT", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		items, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
		assert.Equal(t, "PAYMENT", items[0].(map[string]any)["voucher_type"])
	})

	t.Run("filters by date window", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/vouchers?start_date=2024-09-02&end_date=2024-09-02", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		items, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
		assert.Equal(t, "RECEIPT", items[0].(map[string]any)["voucher_type"])
	})

	t.Run("rejects malformed type filter", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/vouchers?type=TRANSFER", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
