package server

import (
	"net/http"
	"strconv"
	"strings"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	payrolldomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateEmployee(c *gin.Context) {
	var req payrolldomain.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.payrollSvc.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req payrolldomain.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.payrollSvc.UpdateEmployee(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.payrollSvc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEmployees(c *gin.Context) {
	includeInactive, err := parseOptionalBool(c.Query("show_inactive"))
	if err != nil {
		AbortWithError(c, newValidationError("show_inactive", "invalid_bool", "invalid show_inactive"))
		return
	}

	resp, err := s.payrollSvc.ListEmployees(c.Request.Context(), includeInactive)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ProcessPayroll(c *gin.Context) {
	var req payrolldomain.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.payrollSvc.ProcessPayroll(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"slips_created": created}})
}

func (s *Server) ListSalarySlips(c *gin.Context) {
	month, year, err := s.parsePayrollPeriod(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.payrollSvc.SlipsFor(c.Request.Context(), month, year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSalarySlip(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.payrollSvc.GetSlip(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type paySalaryRequest struct {
	Mode      string `json:"payment_mode"`
	Reference string `json:"reference"`
}

func (s *Server) PaySalary(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req paySalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	mode := acctdomain.PaymentMode(strings.ToUpper(strings.TrimSpace(req.Mode)))
	resp, err := s.payrollSvc.PaySalary(c.Request.Context(), id, mode, strings.TrimSpace(req.Reference))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PayrollSummary(c *gin.Context) {
	month, year, err := s.parsePayrollPeriod(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.payrollSvc.MonthSummary(c.Request.Context(), month, year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// parsePayrollPeriod reads month/year query params, defaulting to the
// current month.
func (s *Server) parsePayrollPeriod(c *gin.Context) (int, int, error) {
	now := s.clock.Now()
	month, year := int(now.Month()), now.Year()

	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, newValidationError("month", "invalid_month", "invalid month")
		}
		month = parsed
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, newValidationError("year", "invalid_year", "invalid year")
		}
		year = parsed
	}
	return month, year, nil
}
