package handler

import (
	"strconv"

	appshift "github.com/fuelstation/backend/internal/application/shift"
	"github.com/fuelstation/backend/internal/domain/shift"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShiftHandler handles shift reconciliation endpoints
type ShiftHandler struct {
	BaseHandler
	service *appshift.CloseService
}

// NewShiftHandler creates a new ShiftHandler
func NewShiftHandler(service *appshift.CloseService) *ShiftHandler {
	return &ShiftHandler{service: service}
}

// DispenserReadingRequest represents one dispenser's meter readings
type DispenserReadingRequest struct {
	DispenserID   string `json:"dispenser_id"`
	DispenserName string `json:"dispenser_name" binding:"required,max=100"`
	ProductID     string `json:"product_id"`
	StartReading  string `json:"start_reading" binding:"required"`
	EndReading    string `json:"end_reading" binding:"required"`
	MeterTest     string `json:"meter_test"`
	ItemRate      string `json:"item_rate" binding:"required"`
}

// CloseShiftRequest represents a request to reconcile and lock a shift
type CloseShiftRequest struct {
	ShiftID  int                       `json:"shift_id" binding:"required,min=1"`
	Date     string                    `json:"date" binding:"required,datetime=2006-01-02"`
	Readings []DispenserReadingRequest `json:"readings" binding:"required,min=1,dive"`
}

func parseReadingDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

func (r DispenserReadingRequest) toInput() (shift.ReadingInput, error) {
	input := shift.ReadingInput{DispenserName: r.DispenserName}

	if r.DispenserID != "" {
		id, err := uuid.Parse(r.DispenserID)
		if err != nil {
			return input, err
		}
		input.DispenserID = id
	}
	if r.ProductID != "" {
		id, err := uuid.Parse(r.ProductID)
		if err != nil {
			return input, err
		}
		input.ProductID = id
	}

	var err error
	if input.StartReading, err = parseReadingDecimal(r.StartReading); err != nil {
		return input, err
	}
	if input.EndReading, err = parseReadingDecimal(r.EndReading); err != nil {
		return input, err
	}
	if input.MeterTest, err = parseReadingDecimal(r.MeterTest); err != nil {
		return input, err
	}
	if input.ItemRate, err = parseReadingDecimal(r.ItemRate); err != nil {
		return input, err
	}
	return input, nil
}

// Close reconciles a (shift, date) pair from its dispenser readings and
// locks it against a second close
func (h *ShiftHandler) Close(c *gin.Context) {
	var req CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	readings := make([]shift.ReadingInput, 0, len(req.Readings))
	for _, r := range req.Readings {
		input, err := r.toInput()
		if err != nil {
			h.BadRequest(c, "Invalid reading for dispenser "+r.DispenserName+": "+err.Error())
			return
		}
		readings = append(readings, input)
	}

	result, err := h.service.Close(c.Request.Context(), appshift.CloseShiftCommand{
		ShiftID:  req.ShiftID,
		Date:     date,
		Readings: readings,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Preview returns the pre-close money position of a (shift, date) pair
// without writing anything
func (h *ShiftHandler) Preview(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	shiftID, err := strconv.Atoi(c.Param("shiftId"))
	if err != nil {
		h.BadRequest(c, "Invalid shift ID")
		return
	}

	preview, err := h.service.PreviewClose(c.Request.Context(), shiftID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// RegisterRoutes registers shift reconciliation routes
func (h *ShiftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	product := rg.Group("/product")
	{
		product.POST("/dispensers-reading", h.Close)
		product.GET("/get-shift-closing-data/:date/:shiftId", h.Preview)
	}
}
