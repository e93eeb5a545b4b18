package handler

import (
	"time"

	"github.com/fuelstation/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseDate parses a yyyy-mm-dd date string
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// parseDateRange reads the optional start_date/end_date window from the
// query string. Zero times mean an unbounded side.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return time.Time{}, time.Time{}, false
	}

	var from, to time.Time
	if req.StartDate != "" {
		parsed, err := parseDate(req.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		// Inclusive end: cover the whole last day
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}
