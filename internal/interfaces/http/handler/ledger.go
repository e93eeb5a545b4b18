package handler

import (
	appledger "github.com/fuelstation/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles the read side: general ledger, book reports and
// the customer due ledger
type LedgerHandler struct {
	BaseHandler
	service *appledger.QueryService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(service *appledger.QueryService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// GeneralLedger returns one account's transactions with running balances
func (h *LedgerHandler) GeneralLedger(c *gin.Context) {
	accountNumber := c.Query("account_number")
	if accountNumber == "" {
		h.BadRequest(c, "account_number is required")
		return
	}

	from, to, ok := parseDateRange(c)
	if !ok {
		h.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	view, err := h.service.GeneralLedger(c.Request.Context(), accountNumber, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// BankBook returns per-account ledgers for bank and mobile bank accounts
func (h *LedgerHandler) BankBook(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		h.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	books, err := h.service.BankBookLedger(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, books)
}

// CashBook returns per-account ledgers for cash accounts
func (h *LedgerHandler) CashBook(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		h.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	books, err := h.service.CashBookLedger(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, books)
}

// CustomerLedger returns a customer's due ledger built from credit sales
// and receipt vouchers
func (h *LedgerHandler) CustomerLedger(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	from, to, ok := parseDateRange(c)
	if !ok {
		h.BadRequest(c, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	due, err := h.service.CustomerLedger(c.Request.Context(), accountNumber, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, due)
}

// RegisterRoutes registers ledger query routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/general-ledger", h.GeneralLedger)
	rg.GET("/bank-book-ledger", h.BankBook)
	rg.GET("/cash-book-ledger", h.CashBook)
	rg.GET("/customer-ledger/:accountNumber", h.CustomerLedger)
}
