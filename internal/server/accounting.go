package server

import (
	"context"
	"net/http"
	"strings"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type recordExpenseRequest struct {
	Date         string          `json:"expense_date"`
	CategoryID   *snowflake.ID   `json:"category_id,omitempty"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	IsGSTExpense bool            `json:"is_gst_expense"`
	GSTAmount    decimal.Decimal `json:"gst_amount"`
	Mode         string          `json:"payment_mode"`
	Reference    string          `json:"reference"`
	VendorName   *string         `json:"vendor_name,omitempty"`
	Notes        string          `json:"notes"`
}

func (s *Server) RecordExpense(c *gin.Context) {
	var req recordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDate(req.Date, false)
	if err != nil {
		AbortWithError(c, newValidationError("expense_date", "invalid_date", "invalid expense date"))
		return
	}

	resp, err := s.books.RecordExpense(c.Request.Context(), acctdomain.ExpenseRequest{
		Date:         date,
		CategoryID:   req.CategoryID,
		Description:  strings.TrimSpace(req.Description),
		Amount:       req.Amount,
		IsGSTExpense: req.IsGSTExpense,
		GSTAmount:    req.GSTAmount,
		Mode:         acctdomain.PaymentMode(strings.ToUpper(strings.TrimSpace(req.Mode))),
		Reference:    strings.TrimSpace(req.Reference),
		VendorName:   req.VendorName,
		Notes:        req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListExpenses(c *gin.Context) {
	from, to, err := parseDateRange(c, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.books.Expenses(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateExpenseCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.books.CreateExpenseCategory(c.Request.Context(), strings.TrimSpace(req.Name), req.Description)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListExpenseCategories(c *gin.Context) {
	resp, err := s.books.ExpenseCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type moneyEventRequest struct {
	PartyID   snowflake.ID    `json:"party_id"`
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Mode      string          `json:"payment_mode"`
	Reference string          `json:"reference"`
	Note      string          `json:"note"`
}

func (s *Server) RecordReceipt(c *gin.Context) {
	s.recordMoneyEvent(c, s.books.RecordReceipt)
}

func (s *Server) RecordPayment(c *gin.Context) {
	s.recordMoneyEvent(c, s.books.RecordPayment)
}

func (s *Server) recordMoneyEvent(c *gin.Context, post func(ctx context.Context, ev acctdomain.MoneyEvent) error) {
	var req moneyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDate(req.Date, false)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}

	party, err := s.partySvc.Get(c.Request.Context(), req.PartyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ev := acctdomain.MoneyEvent{
		Date:      date,
		PartyID:   party.ID,
		PartyName: party.Name,
		Amount:    req.Amount,
		Mode:      acctdomain.PaymentMode(strings.ToUpper(strings.TrimSpace(req.Mode))),
		Reference: strings.TrimSpace(req.Reference),
		Note:      req.Note,
	}
	if err := post(c.Request.Context(), ev); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"recorded": true}})
}

func (s *Server) CashBook(c *gin.Context) {
	from, to, err := parseDateRange(c, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.books.CashBook(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) BankBook(c *gin.Context) {
	from, to, err := parseDateRange(c, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.books.BankBook(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
