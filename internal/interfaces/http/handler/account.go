package handler

import (
	"time"

	appledger "github.com/fuelstation/backend/internal/application/ledger"
	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account registry API endpoints
type AccountHandler struct {
	BaseHandler
	service *appledger.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(service *appledger.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"account_number"`
	Name          string    `json:"name"`
	GroupName     string    `json:"group_name,omitempty"`
	AccountType   string    `json:"account_type"`
	TotalAmount   string    `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateAccountRequest represents a request to create an account
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required,max=200"`
	GroupName      string `json:"group_name" binding:"max=100"`
	AccountType    string `json:"account_type" binding:"omitempty,oneof=CASH BANK MOBILE_BANK RECEIVABLE PAYABLE OTHER"`
	OpeningBalance string `json:"opening_balance"`
}

// AccountListFilter represents filter parameters for the account list
type AccountListFilter struct {
	Type     string `form:"type"`
	Search   string `form:"search"`
	Page     int    `form:"page,omitempty" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,omitempty" binding:"omitempty,min=1,max=100"`
}

func toAccountResponse(account *ledger.Account) AccountResponse {
	return AccountResponse{
		ID:            account.ID.String(),
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		GroupName:     account.GroupName,
		AccountType:   string(account.AccountType),
		TotalAmount:   account.TotalAmount.String(),
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

// Create creates an account with a generated account number
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	opening := decimal.Zero
	if req.OpeningBalance != "" {
		parsed, err := decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			h.BadRequest(c, "Invalid opening balance")
			return
		}
		opening = parsed
	}

	accountType := ledger.AccountType(req.AccountType)
	if req.AccountType == "" {
		accountType = ledger.AccountTypeOther
	}

	account, err := h.service.Create(c.Request.Context(), appledger.CreateAccountCommand{
		Name:           req.Name,
		GroupName:      req.GroupName,
		AccountType:    accountType,
		OpeningBalance: opening,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toAccountResponse(account))
}

// Get returns one account by account number
func (h *AccountHandler) Get(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	account, err := h.service.GetByAccountNumber(c.Request.Context(), accountNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAccountResponse(account))
}

// List returns accounts filtered by type and search text
func (h *AccountHandler) List(c *gin.Context) {
	var filter AccountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := ledger.AccountFilter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Type != "" {
		domainFilter.Types = []ledger.AccountType{ledger.AccountType(filter.Type)}
	}

	accounts, total, err := h.service.List(c.Request.Context(), domainFilter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResponse(&accounts[i]))
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.Create)
		accounts.GET("", h.List)
		accounts.GET("/:accountNumber", h.Get)
	}
}
