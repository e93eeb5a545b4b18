package handler

import (
	"strconv"
	"time"

	appsales "github.com/fuelstation/backend/internal/application/sales"
	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesHandler handles sale and credit sale fact endpoints
type SalesHandler struct {
	BaseHandler
	service *appsales.Service
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(service *appsales.Service) *SalesHandler {
	return &SalesHandler{service: service}
}

// RecordSaleRequest represents a request to record a direct sale
type RecordSaleRequest struct {
	ShiftID     int    `json:"shift_id" binding:"required,min=1"`
	SaleDate    string `json:"sale_date" binding:"required,datetime=2006-01-02"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name" binding:"required,max=100"`
	Quantity    string `json:"quantity" binding:"required"`
	Rate        string `json:"rate" binding:"required"`
	Channel     string `json:"channel" binding:"omitempty,oneof=CASH BANK MOBILE_BANK"`
	BankName    string `json:"bank_name" binding:"max=100"`
	Remark      string `json:"remark" binding:"max=255"`
}

// RecordCreditSaleRequest represents a request to record an on-credit sale
type RecordCreditSaleRequest struct {
	ShiftID       int    `json:"shift_id" binding:"required,min=1"`
	SaleDate      string `json:"sale_date" binding:"required,datetime=2006-01-02"`
	AccountNumber string `json:"account_number" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required,max=100"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name" binding:"required,max=100"`
	Quantity      string `json:"quantity" binding:"required"`
	Rate          string `json:"rate" binding:"required"`
	VehicleNumber string `json:"vehicle_number" binding:"max=50"`
	Remark        string `json:"remark" binding:"max=255"`
}

// SaleResponse represents a direct sale in API responses
type SaleResponse struct {
	ID          string    `json:"id"`
	ShiftID     int       `json:"shift_id"`
	SaleDate    time.Time `json:"sale_date"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    string    `json:"quantity"`
	Rate        string    `json:"rate"`
	Amount      string    `json:"amount"`
	Channel     string    `json:"channel"`
	BankName    string    `json:"bank_name,omitempty"`
	Remark      string    `json:"remark,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreditSaleResponse represents an on-credit sale in API responses
type CreditSaleResponse struct {
	ID            string    `json:"id"`
	ShiftID       int       `json:"shift_id"`
	SaleDate      time.Time `json:"sale_date"`
	AccountNumber string    `json:"account_number"`
	CustomerName  string    `json:"customer_name"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      string    `json:"quantity"`
	Rate          string    `json:"rate"`
	Amount        string    `json:"amount"`
	VehicleNumber string    `json:"vehicle_number,omitempty"`
	Remark        string    `json:"remark,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ShiftSalesResponse bundles both fact kinds for one shift
type ShiftSalesResponse struct {
	Sales       []SaleResponse       `json:"sales"`
	CreditSales []CreditSaleResponse `json:"credit_sales"`
}

func toSaleResponse(s *sales.Sale) SaleResponse {
	return SaleResponse{
		ID:          s.ID.String(),
		ShiftID:     s.ShiftID,
		SaleDate:    s.SaleDate,
		ProductID:   s.ProductID.String(),
		ProductName: s.ProductName,
		Quantity:    s.Quantity.String(),
		Rate:        s.Rate.String(),
		Amount:      s.Amount.String(),
		Channel:     string(s.Channel),
		BankName:    s.BankName,
		Remark:      s.Remark,
		CreatedAt:   s.CreatedAt,
	}
}

func toCreditSaleResponse(cs *sales.CreditSale) CreditSaleResponse {
	return CreditSaleResponse{
		ID:            cs.ID.String(),
		ShiftID:       cs.ShiftID,
		SaleDate:      cs.SaleDate,
		AccountNumber: cs.AccountNumber,
		CustomerName:  cs.CustomerName,
		ProductID:     cs.ProductID.String(),
		ProductName:   cs.ProductName,
		Quantity:      cs.Quantity.String(),
		Rate:          cs.Rate.String(),
		Amount:        cs.Amount.String(),
		VehicleNumber: cs.VehicleNumber,
		Remark:        cs.Remark,
		CreatedAt:     cs.CreatedAt,
	}
}

func parseOptionalUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.UUID{}, nil
	}
	return uuid.Parse(value)
}

// RecordSale records a direct sale fact
func (h *SalesHandler) RecordSale(c *gin.Context) {
	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	saleDate, err := parseDate(req.SaleDate)
	if err != nil {
		h.BadRequest(c, "Invalid sale date, expected YYYY-MM-DD")
		return
	}
	productID, err := parseOptionalUUID(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		h.BadRequest(c, "Invalid quantity")
		return
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		h.BadRequest(c, "Invalid rate")
		return
	}

	channel := ledger.PaymentChannel(req.Channel)
	if req.Channel == "" {
		channel = ledger.ChannelCash
	}

	sale, err := h.service.RecordSale(c.Request.Context(), appsales.RecordSaleCommand{
		ShiftID:     req.ShiftID,
		SaleDate:    saleDate,
		ProductID:   productID,
		ProductName: req.ProductName,
		Quantity:    quantity,
		Rate:        rate,
		Channel:     channel,
		BankName:    req.BankName,
		Remark:      req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toSaleResponse(sale))
}

// RecordCreditSale records an on-credit sale fact against a customer account
func (h *SalesHandler) RecordCreditSale(c *gin.Context) {
	var req RecordCreditSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	saleDate, err := parseDate(req.SaleDate)
	if err != nil {
		h.BadRequest(c, "Invalid sale date, expected YYYY-MM-DD")
		return
	}
	productID, err := parseOptionalUUID(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		h.BadRequest(c, "Invalid quantity")
		return
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		h.BadRequest(c, "Invalid rate")
		return
	}

	cs, err := h.service.RecordCreditSale(c.Request.Context(), appsales.RecordCreditSaleCommand{
		ShiftID:       req.ShiftID,
		SaleDate:      saleDate,
		AccountNumber: req.AccountNumber,
		CustomerName:  req.CustomerName,
		ProductID:     productID,
		ProductName:   req.ProductName,
		Quantity:      quantity,
		Rate:          rate,
		VehicleNumber: req.VehicleNumber,
		Remark:        req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCreditSaleResponse(cs))
}

// DeleteSale removes a direct sale fact and restores its stock
func (h *SalesHandler) DeleteSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.service.DeleteSale(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteCreditSale removes a credit sale fact and restores its stock
func (h *SalesHandler) DeleteCreditSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid credit sale ID")
		return
	}

	if err := h.service.DeleteCreditSale(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListByShift returns both fact kinds recorded for one (shift, date) pair
func (h *SalesHandler) ListByShift(c *gin.Context) {
	shiftID, err := strconv.Atoi(c.Query("shift_id"))
	if err != nil || shiftID <= 0 {
		h.BadRequest(c, "shift_id must be a positive integer")
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	saleRows, creditRows, err := h.service.ListByShift(c.Request.Context(), shiftID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := ShiftSalesResponse{
		Sales:       make([]SaleResponse, 0, len(saleRows)),
		CreditSales: make([]CreditSaleResponse, 0, len(creditRows)),
	}
	for i := range saleRows {
		resp.Sales = append(resp.Sales, toSaleResponse(&saleRows[i]))
	}
	for i := range creditRows {
		resp.CreditSales = append(resp.CreditSales, toCreditSaleResponse(&creditRows[i]))
	}
	h.Success(c, resp)
}

// RegisterRoutes registers sale fact routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sales", h.RecordSale)
	rg.GET("/sales", h.ListByShift)
	rg.DELETE("/sales/:id", h.DeleteSale)
	rg.POST("/credit-sales", h.RecordCreditSale)
	rg.DELETE("/credit-sales/:id", h.DeleteCreditSale)
}
