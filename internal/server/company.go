package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetCompanyProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.company.Get()})
}

func (s *Server) ReloadCompanyProfile(c *gin.Context) {
	if err := s.company.Reload(); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.company.Get()})
}

func (s *Server) ListFinancialYears(c *gin.Context) {
	resp, err := s.yearsSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CloseFinancialYear(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		AbortWithError(c, newValidationError("code", "required", "year code is required"))
		return
	}

	if err := s.yearsSvc.Close(c.Request.Context(), code); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"closed": true}})
}
