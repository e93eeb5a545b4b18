package handler

import (
	"time"

	appvoucher "github.com/fuelstation/backend/internal/application/voucher"
	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/voucher"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// idempotencyKeyHeader is the request header that deduplicates voucher posts
const idempotencyKeyHeader = "X-Idempotency-Key"

// VoucherHandler handles voucher posting, amending and reversal endpoints
type VoucherHandler struct {
	BaseHandler
	engine *appvoucher.Engine
}

// NewVoucherHandler creates a new VoucherHandler
func NewVoucherHandler(engine *appvoucher.Engine) *VoucherHandler {
	return &VoucherHandler{engine: engine}
}

// CreateVoucherRequest represents a request to post a voucher
type CreateVoucherRequest struct {
	Category     string `json:"category" binding:"omitempty,oneof=SUPPLIER CUSTOMER EMPLOYEE OFFICE GENERAL"`
	SubType      string `json:"sub_type"`
	FromAccount  string `json:"from_account" binding:"required"`
	ToAccount    string `json:"to_account" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	Channel      string `json:"channel" binding:"omitempty,oneof=CASH BANK MOBILE_BANK"`
	BankName     string `json:"bank_name"`
	ChequeNumber string `json:"cheque_number"`
	Branch       string `json:"branch"`
	VoucherDate  string `json:"voucher_date" binding:"required"`
	ShiftID      *int   `json:"shift_id"`
	ShiftDate    string `json:"shift_date"`
	Remark       string `json:"remark" binding:"max=500"`
}

// UpdateVoucherRequest represents a request to amend a posted voucher
type UpdateVoucherRequest struct {
	Category     string `json:"category" binding:"omitempty,oneof=SUPPLIER CUSTOMER EMPLOYEE OFFICE GENERAL"`
	SubType      string `json:"sub_type"`
	FromAccount  string `json:"from_account" binding:"required"`
	ToAccount    string `json:"to_account" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	Channel      string `json:"channel" binding:"omitempty,oneof=CASH BANK MOBILE_BANK"`
	BankName     string `json:"bank_name"`
	ChequeNumber string `json:"cheque_number"`
	Branch       string `json:"branch"`
	VoucherDate  string `json:"voucher_date" binding:"required"`
	Remark       string `json:"remark" binding:"max=500"`
}

// BulkDeleteVouchersRequest represents a request to reverse a batch of vouchers
type BulkDeleteVouchersRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// VoucherListFilter represents filter parameters for the voucher list
type VoucherListFilter struct {
	Type      string `form:"type" binding:"omitempty,oneof=PAYMENT RECEIPT"`
	Category  string `form:"category" binding:"omitempty,oneof=SUPPLIER CUSTOMER EMPLOYEE OFFICE GENERAL"`
	Account   string `form:"account"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page,omitempty" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,omitempty" binding:"omitempty,min=1,max=100"`
}

// VoucherResponse represents a voucher in API responses
type VoucherResponse struct {
	ID            string     `json:"id"`
	VoucherType   string     `json:"voucher_type"`
	Category      string     `json:"category"`
	SubType       string     `json:"sub_type"`
	FromAccount   string     `json:"from_account"`
	ToAccount     string     `json:"to_account"`
	TransactionID string     `json:"transaction_id"`
	Amount        string     `json:"amount"`
	Channel       string     `json:"channel"`
	VoucherDate   time.Time  `json:"voucher_date"`
	ShiftID       *int       `json:"shift_id,omitempty"`
	ShiftDate     *time.Time `json:"shift_date,omitempty"`
	Remark        string     `json:"remark,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toVoucherResponse(v *voucher.Voucher) VoucherResponse {
	return VoucherResponse{
		ID:            v.ID.String(),
		VoucherType:   string(v.VoucherType),
		Category:      string(v.Category),
		SubType:       string(v.SubType),
		FromAccount:   v.FromAccountNumber,
		ToAccount:     v.ToAccountNumber,
		TransactionID: v.TransactionID.String(),
		Amount:        v.Amount.String(),
		Channel:       string(v.Channel),
		VoucherDate:   v.VoucherDate,
		ShiftID:       v.ShiftID,
		ShiftDate:     v.ShiftDate,
		Remark:        v.Remark,
		CreatedAt:     v.CreatedAt,
	}
}

func (h *VoucherHandler) buildCreateCommand(c *gin.Context, voucherType voucher.VoucherType) (appvoucher.CreateVoucherCommand, bool) {
	var req CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return appvoucher.CreateVoucherCommand{}, false
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return appvoucher.CreateVoucherCommand{}, false
	}

	voucherDate, err := parseDate(req.VoucherDate)
	if err != nil {
		h.BadRequest(c, "Invalid voucher date, expected YYYY-MM-DD")
		return appvoucher.CreateVoucherCommand{}, false
	}

	var shiftDate *time.Time
	if req.ShiftDate != "" {
		parsed, err := parseDate(req.ShiftDate)
		if err != nil {
			h.BadRequest(c, "Invalid shift date, expected YYYY-MM-DD")
			return appvoucher.CreateVoucherCommand{}, false
		}
		shiftDate = &parsed
	}

	channel := ledger.PaymentChannel(req.Channel)
	if req.Channel == "" {
		channel = ledger.ChannelCash
	}

	return appvoucher.CreateVoucherCommand{
		VoucherType: voucherType,
		Category:    voucher.Category(req.Category),
		SubType:     voucher.SubType(req.SubType),
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      amount,
		Channel:     channel,
		ChannelDetail: ledger.ChannelDetail{
			BankName:     req.BankName,
			ChequeNumber: req.ChequeNumber,
			Branch:       req.Branch,
		},
		VoucherDate:    voucherDate,
		ShiftID:        req.ShiftID,
		ShiftDate:      shiftDate,
		Remark:         req.Remark,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	}, true
}

func (h *VoucherHandler) create(c *gin.Context, cmd appvoucher.CreateVoucherCommand) {
	v, err := h.engine.Create(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toVoucherResponse(v))
}

// CreatePayment posts a payment voucher
func (h *VoucherHandler) CreatePayment(c *gin.Context) {
	cmd, ok := h.buildCreateCommand(c, voucher.TypePayment)
	if !ok {
		return
	}
	h.create(c, cmd)
}

// CreateReceipt posts a receipt voucher
func (h *VoucherHandler) CreateReceipt(c *gin.Context) {
	cmd, ok := h.buildCreateCommand(c, voucher.TypeReceipt)
	if !ok {
		return
	}
	h.create(c, cmd)
}

// CreateOfficePayment posts an office expense payment voucher
func (h *VoucherHandler) CreateOfficePayment(c *gin.Context) {
	cmd, ok := h.buildCreateCommand(c, voucher.TypePayment)
	if !ok {
		return
	}
	cmd.Category = voucher.CategoryOffice
	cmd.SubType = voucher.SubTypeOfficePayment
	h.create(c, cmd)
}

// Update amends a posted voucher, reversing and reapplying its balance deltas
func (h *VoucherHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	var req UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	voucherDate, err := parseDate(req.VoucherDate)
	if err != nil {
		h.BadRequest(c, "Invalid voucher date, expected YYYY-MM-DD")
		return
	}

	// An omitted channel means cash, same as on create.
	channel := ledger.PaymentChannel(req.Channel)
	if req.Channel == "" {
		channel = ledger.ChannelCash
	}

	v, err := h.engine.Update(c.Request.Context(), id, appvoucher.UpdateVoucherCommand{
		Category:    voucher.Category(req.Category),
		SubType:     voucher.SubType(req.SubType),
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      amount,
		Channel:     channel,
		ChannelDetail: ledger.ChannelDetail{
			BankName:     req.BankName,
			ChequeNumber: req.ChequeNumber,
			Branch:       req.Branch,
		},
		VoucherDate: voucherDate,
		Remark:      req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toVoucherResponse(v))
}

// Delete reverses one voucher and restores both cached balances
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	if err := h.engine.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// BulkDelete reverses a batch of vouchers in one unit of work
func (h *VoucherHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteVouchersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid voucher ID: "+raw)
			return
		}
		ids = append(ids, id)
	}

	if err := h.engine.BulkDelete(c.Request.Context(), ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get returns one voucher by ID
func (h *VoucherHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	v, err := h.engine.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toVoucherResponse(v))
}

// List returns vouchers filtered by type, category, account and date window
func (h *VoucherHandler) List(c *gin.Context) {
	var filter VoucherListFilter
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

	domainFilter := voucher.Filter{
		Account:  filter.Account,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Type != "" {
		voucherType := voucher.VoucherType(filter.Type)
		domainFilter.VoucherType = &voucherType
	}
	if filter.Category != "" {
		category := voucher.Category(filter.Category)
		domainFilter.Category = &category
	}
	if filter.StartDate != "" {
		from, err := parseDate(filter.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		domainFilter.FromDate = &from
	}
	if filter.EndDate != "" {
		to, err := parseDate(filter.EndDate)
		if err != nil {
			h.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		domainFilter.ToDate = &endOfDay
	}

	vouchers, total, err := h.engine.List(c.Request.Context(), domainFilter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]VoucherResponse, 0, len(vouchers))
	for i := range vouchers {
		items = append(items, toVoucherResponse(&vouchers[i]))
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers voucher routes
func (h *VoucherHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("/payment", h.CreatePayment)
		vouchers.POST("/received", h.CreateReceipt)
		vouchers.GET("", h.List)
		vouchers.GET("/:id", h.Get)
		vouchers.PUT("/:id", h.Update)
		vouchers.DELETE("/:id", h.Delete)
		vouchers.POST("/bulk-delete", h.BulkDelete)
	}
	rg.POST("/office-payments", h.CreateOfficePayment)
}
