package server

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const dateOnlyLayout = "2006-01-02"

func parseIDParam(c *gin.Context) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		return 0, newValidationError("id", "invalid_id", "invalid id")
	}
	return id, nil
}

func parseOptionalBool(value string) (bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false, nil
	}
	return strconv.ParseBool(trimmed)
}

func parseOptionalSnowflakeID(value string) (*snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed == 0 {
		return nil, errors.New("invalid_snowflake_id")
	}
	return &parsed, nil
}

func parseDate(value string, endOfDay bool) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, trimmed)
	if err != nil {
		return time.Time{}, errors.New("invalid_date")
	}
	if endOfDay {
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	}
	return parsed, nil
}

// parseDateRange reads the from/to query params. Missing bounds widen
// to the current calendar month.
func parseDateRange(c *gin.Context, now time.Time) (time.Time, time.Time, error) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)

	if raw := c.Query("from"); strings.TrimSpace(raw) != "" {
		parsed, err := parseDate(raw, false)
		if err != nil {
			return time.Time{}, time.Time{}, newValidationError("from", "invalid_date", "invalid from date")
		}
		from = parsed
	}
	if raw := c.Query("to"); strings.TrimSpace(raw) != "" {
		parsed, err := parseDate(raw, true)
		if err != nil {
			return time.Time{}, time.Time{}, newValidationError("to", "invalid_date", "invalid to date")
		}
		to = parsed
	}
	return from, to, nil
}

// parseOptionalDateRange reads the from/to query params. Missing
// bounds stay zero so list queries leave them unconstrained.
func parseOptionalDateRange(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time

	if raw := c.Query("from"); strings.TrimSpace(raw) != "" {
		parsed, err := parseDate(raw, false)
		if err != nil {
			return time.Time{}, time.Time{}, newValidationError("from", "invalid_date", "invalid from date")
		}
		from = parsed
	}
	if raw := c.Query("to"); strings.TrimSpace(raw) != "" {
		parsed, err := parseDate(raw, true)
		if err != nil {
			return time.Time{}, time.Time{}, newValidationError("to", "invalid_date", "invalid to date")
		}
		to = parsed
	}
	return from, to, nil
}
