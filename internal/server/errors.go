package server

import (
	"errors"
	"net/http"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	billingdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/domain"
	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/einvoice"
	fydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear/domain"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	payrolldomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) {
		return vErr
	}
	return nil
}

func isDomainValidationError(err error) bool {
	switch {
	case errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, partydomain.ErrInvalidName),
		errors.Is(err, partydomain.ErrInvalidType),
		errors.Is(err, partydomain.ErrInvalidAmount),
		errors.Is(err, partydomain.ErrPartyInactive),
		errors.Is(err, billingdomain.ErrPartyInactive),
		errors.Is(err, billingdomain.ErrWrongPartyRole),
		errors.Is(err, billingdomain.ErrNoValidLines),
		errors.Is(err, billingdomain.ErrLineProductMissing),
		errors.Is(err, acctdomain.ErrInvalidAmount),
		errors.Is(err, acctdomain.ErrInvalidPaymentMode),
		errors.Is(err, acctdomain.ErrCreditNotAllowed),
		errors.Is(err, acctdomain.ErrInvalidName),
		errors.Is(err, payrolldomain.ErrInvalidName),
		errors.Is(err, payrolldomain.ErrInvalidPeriod),
		errors.Is(err, payrolldomain.ErrInvalidDays),
		errors.Is(err, einvoice.ErrNotGSTInvoice):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrCategoryNotFound),
		errors.Is(err, partydomain.ErrNotFound),
		errors.Is(err, billingdomain.ErrNotFound),
		errors.Is(err, billingdomain.ErrPartyNotFound),
		errors.Is(err, fydomain.ErrNotFound),
		errors.Is(err, acctdomain.ErrCategoryNotFound),
		errors.Is(err, payrolldomain.ErrNotFound),
		errors.Is(err, payrolldomain.ErrSlipNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, catalogdomain.ErrCategoryInUse),
		errors.Is(err, catalogdomain.ErrDuplicateCode),
		errors.Is(err, partydomain.ErrNonZeroBalance),
		errors.Is(err, fydomain.ErrYearClosed),
		errors.Is(err, payrolldomain.ErrAlreadyPaid):
		return true
	default:
		return false
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case isDomainValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}
