package server

import (
	"net/http"
	"strings"

	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/tax"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateParty(c *gin.Context) {
	var req partydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.partySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateParty(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req partydomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = id

	resp, err := s.partySvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetParty(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.partySvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListParties(c *gin.Context) {
	var query struct {
		Type         string `form:"party_type"`
		Search       string `form:"search"`
		ShowInactive string `form:"show_inactive"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	showInactive, err := parseOptionalBool(query.ShowInactive)
	if err != nil {
		AbortWithError(c, newValidationError("show_inactive", "invalid_bool", "invalid show_inactive"))
		return
	}

	resp, err := s.partySvc.List(c.Request.Context(), partydomain.ListRequest{
		Type:         partydomain.PartyType(strings.ToUpper(strings.TrimSpace(query.Type))),
		Search:       strings.TrimSpace(query.Search),
		ShowInactive: showInactive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateParty(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.partySvc.Deactivate(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deactivated": true}})
}

func (s *Server) ListPartyTransactions(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.partySvc.TransactionsFor(c.Request.Context(), id, 100)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) Outstanding(c *gin.Context) {
	receivable, err := s.partySvc.TotalReceivable(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	payable, err := s.partySvc.TotalPayable(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"total_receivable": receivable,
		"total_payable":    payable,
	}})
}

func (s *Server) ValidateGSTIN(c *gin.Context) {
	gstin := strings.TrimSpace(c.Query("gstin"))
	if gstin == "" {
		AbortWithError(c, newValidationError("gstin", "required", "gstin is required"))
		return
	}

	valid, message := tax.ValidateGSTIN(gstin)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"gstin":      strings.ToUpper(gstin),
		"valid":      valid,
		"message":    message,
		"state_code": tax.StateCodeFromGSTIN(gstin),
	}})
}
