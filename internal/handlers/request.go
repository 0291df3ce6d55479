package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"delivery_ledger/internal/ledger"
	"delivery_ledger/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// parseDay reads YYYY-MM-DD at the start of that day in loc.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, loc)
}

// parseRecordDate accepts RFC3339 or a bare YYYY-MM-DD.
func parseRecordDate(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return parseDay(value, loc)
}

// dateRange builds the filter range from ?from and ?to. No from means no
// date filter.
func dateRange(c *gin.Context, loc *time.Location) (*ledger.DateRange, error) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" {
		return nil, nil
	}
	f, err := parseDay(from, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q", from)
	}
	r := &ledger.DateRange{From: &f}
	if to != "" {
		t, err := parseDay(to, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid to date %q", to)
		}
		if t.Before(f) {
			return nil, fmt.Errorf("to date %s is before from date %s", to, from)
		}
		r.To = &t
	}
	return r, nil
}

func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCourierExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrExportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
