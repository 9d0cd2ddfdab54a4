package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordCounters(t *testing.T) {
	m := New()

	m.RecordDocumentCreated("invoice")
	m.RecordDocumentCreated("invoice")
	m.RecordDocumentCreated("purchase")
	m.RecordDocumentCancelled("invoice")
	m.RecordLedgerPosting("SALE")
	m.RecordStockMovement("SALE")
	m.RecordEInvoiceGenerated()
	m.RecordSalaryPaid()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.documentsCreated.WithLabelValues("invoice")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsCreated.WithLabelValues("purchase")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsCancelled.WithLabelValues("invoice")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerPostings.WithLabelValues("SALE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockMovements.WithLabelValues("SALE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.einvoicesGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.salariesPaid))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	m.RecordDocumentCreated("invoice")
	m.RecordLedgerPosting("SALE")
	m.RecordSalaryPaid()
	assert.Nil(t, m.Registry())
}

func TestGinMiddleware_CountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	h := NewHTTPMetrics(m)

	r := gin.New()
	r.Use(GinMiddleware(h))
	r.GET("/parties/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/parties/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		h.requests.WithLabelValues("GET", "/parties/:id", "200")))
}
