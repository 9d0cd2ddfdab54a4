package server

import (
	"net/http"
	"strings"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	billingdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createInvoiceRequest struct {
	PartyID        snowflake.ID                `json:"party_id"`
	Date           string                      `json:"invoice_date"`
	IsGSTInvoice   bool                        `json:"is_gst_invoice"`
	Mode           string                      `json:"payment_mode"`
	DiscountAmount decimal.Decimal             `json:"discount_amount"`
	Notes          string                      `json:"notes"`
	Lines          []billingdomain.LineRequest `json:"lines"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDate(req.Date, false)
	if err != nil {
		AbortWithError(c, newValidationError("invoice_date", "invalid_date", "invalid invoice date"))
		return
	}

	resp, err := s.billingSvc.CreateInvoice(c.Request.Context(), billingdomain.CreateInvoiceRequest{
		PartyID:        req.PartyID,
		Date:           date,
		IsGSTInvoice:   req.IsGSTInvoice,
		Mode:           acctdomain.PaymentMode(strings.ToUpper(strings.TrimSpace(req.Mode))),
		DiscountAmount: req.DiscountAmount,
		Notes:          req.Notes,
		Lines:          req.Lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billingSvc.GetInvoice(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	req, err := s.documentListRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billingSvc.ListInvoices(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelInvoice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billingSvc.CancelInvoice(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SalesRegister(c *gin.Context) {
	from, to, err := parseDateRange(c, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billingSvc.SalesRegister(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createPurchaseRequest struct {
	PartyID            snowflake.ID                `json:"party_id"`
	Date               string                      `json:"purchase_date"`
	SupplierBillNumber string                      `json:"supplier_bill_number"`
	IsGSTPurchase      bool                        `json:"is_gst_purchase"`
	Mode               string                      `json:"payment_mode"`
	DiscountAmount     decimal.Decimal             `json:"discount_amount"`
	Notes              string                      `json:"notes"`
	Lines              []billingdomain.LineRequest `json:"lines"`
}

func (s *Server) CreatePurchase(c *gin.Context) {
	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseDate(req.Date, false)
	if err != nil {
		AbortWithError(c, newValidationError("purchase_date", "invalid_date", "invalid purchase date"))
		return
	}

	resp, err := s.billingSvc.CreatePurchase(c.Request.Context(), billingdomain.CreatePurchaseRequest{
		PartyID:            req.PartyID,
		Date:               date,
		SupplierBillNumber: strings.TrimSpace(req.SupplierBillNumber),
		IsGSTPurchase:      req.IsGSTPurchase,
		Mode:               acctdomain.PaymentMode(strings.ToUpper(strings.TrimSpace(req.Mode))),
		DiscountAmount:     req.DiscountAmount,
		Notes:              req.Notes,
		Lines:              req.Lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPurchase(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billingSvc.GetPurchase(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPurchases(c *gin.Context) {
	req, err := s.documentListRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billingSvc.ListPurchases(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelPurchase(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billingSvc.CancelPurchase(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PurchaseRegister(c *gin.Context) {
	from, to, err := parseDateRange(c, s.clock.Now())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.billingSvc.PurchaseRegister(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PreviewEInvoice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.einvoiceSvc.Document(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (s *Server) GenerateEInvoice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	path, err := s.einvoiceSvc.Generate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"file_path": path}})
}

func (s *Server) documentListRequest(c *gin.Context) (billingdomain.ListRequest, error) {
	from, to, err := parseOptionalDateRange(c)
	if err != nil {
		return billingdomain.ListRequest{}, err
	}
	return billingdomain.ListRequest{
		From:   from,
		To:     to,
		Status: billingdomain.DocumentStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
	}, nil
}
