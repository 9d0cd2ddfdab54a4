package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/composer"
	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	acctservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/service"
	billingdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/domain"
	billingservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/service"
	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	catalogservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/service"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/clock"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/company"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/config"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/einvoice"
	fydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear/domain"
	fyservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear/service"
	obsmetrics "github.com/AtharvaMeherkar/billpro-billing-software/internal/observability/metrics"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	partyservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/service"
	payrolldomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll/domain"
	payrollservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll/service"
	stockdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/domain"
	stockservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/service"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testProfile = `{
  "name": "BillPro Traders",
  "gstin": "27AAAAA0000A1Z5",
  "address": {"line1": "12 Market Road", "city": "Pune", "pincode": "411001", "state_code": "27"}
}`

type serverFixture struct {
	srv *Server
	db  *gorm.DB
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.ProductCategory{},
		&catalogdomain.Product{},
		&stockdomain.StockMovement{},
		&partydomain.Party{},
		&partydomain.PartyTransaction{},
		&acctdomain.JournalEntry{},
		&acctdomain.CashTransaction{},
		&acctdomain.BankTransaction{},
		&acctdomain.ExpenseCategory{},
		&acctdomain.Expense{},
		&fydomain.FinancialYear{},
		&billingdomain.Invoice{},
		&billingdomain.InvoiceItem{},
		&billingdomain.Purchase{},
		&billingdomain.PurchaseItem{},
		&payrolldomain.Employee{},
		&payrolldomain.SalarySlip{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	profilePath := filepath.Join(t.TempDir(), "company.json")
	require.NoError(t, os.WriteFile(profilePath, []byte(testProfile), 0o644))
	store, err := company.NewStore(profilePath, zap.NewNop())
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC))

	cfg := config.Config{
		InvoicePrefix:  "INV",
		PurchasePrefix: "PUR",
		EInvoiceDir:    t.TempDir(),
	}

	parties := partyservice.NewService(partyservice.Params{DB: db, Log: zap.NewNop(), GenID: node})
	stock := stockservice.NewService(stockservice.Params{DB: db, Log: zap.NewNop(), GenID: node})
	catalog := catalogservice.NewService(catalogservice.Params{DB: db, Log: zap.NewNop(), GenID: node})
	years := fyservice.NewService(fyservice.Params{DB: db, Log: zap.NewNop(), GenID: node, Clock: fake})
	comp := composer.NewComposer(composer.Params{
		Log: zap.NewNop(), GenID: node, Parties: parties, Stock: stock,
	})
	books := acctservice.NewService(acctservice.Params{DB: db, Log: zap.NewNop(), GenID: node, Composer: comp})
	billing := billingservice.NewService(billingservice.Params{
		DB: db, Log: zap.NewNop(), GenID: node, Clock: fake,
		Config: &cfg, Company: store, Years: years, Composer: comp,
	})
	payroll := payrollservice.NewService(payrollservice.Params{
		DB: db, Log: zap.NewNop(), GenID: node, Clock: fake, Composer: comp,
	})
	einvoices := einvoice.NewService(einvoice.Params{
		DB: db, Log: zap.NewNop(), Clock: fake, Config: &cfg, Company: store,
	})

	metrics := obsmetrics.New()
	engine := NewEngine(metrics, obsmetrics.NewHTTPMetrics(metrics))

	srv := NewServer(ServerParams{
		Gin:         engine,
		Cfg:         cfg,
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       fake,
		Company:     store,
		CatalogSvc:  catalog,
		StockSvc:    stock,
		PartySvc:    parties,
		BillingSvc:  billing,
		Books:       books,
		YearsSvc:    years,
		PayrollSvc:  payroll,
		EInvoiceSvc: einvoices,
	})

	return &serverFixture{srv: srv, db: db}
}

func (f *serverFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.srv.Engine().ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestHealth(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestProductLifecycle(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/categories", gin.H{"name": "Stationery"})
	require.Equal(t, http.StatusOK, w.Code)
	var category catalogdomain.ProductCategory
	decodeData(t, w, &category)

	w = f.do(t, http.MethodPost, "/api/v1/products", gin.H{
		"name":          "A4 Paper",
		"category_id":   category.ID,
		"hsn_code":      "4802",
		"gst_percent":   "18",
		"cost_price":    "250",
		"selling_price": "300",
		"opening_stock": "40",
		"unit":          "PKT",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var product catalogdomain.Product
	decodeData(t, w, &product)
	assert.Equal(t, "A4 Paper", product.Name)
	assert.Equal(t, "40", product.CurrentStock.String())

	w = f.do(t, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/products/"+product.ID.String()+"/adjust-stock", gin.H{
		"new_quantity": "35",
		"note":         "stock count",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/products/"+product.ID.String()+"/movements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var movements []stockdomain.StockMovement
	decodeData(t, w, &movements)
	require.Len(t, movements, 2)
	assert.Equal(t, "-5", movements[0].Quantity.String())
	assert.Equal(t, "40", movements[1].Quantity.String())

	// Category with a product attached cannot be removed.
	w = f.do(t, http.MethodDelete, "/api/v1/categories/"+category.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateInvoiceOverHTTP(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/parties", gin.H{
		"party_type": "CUSTOMER",
		"name":       "Sharma Traders",
		"state_code": "27",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var party partydomain.Party
	decodeData(t, w, &party)

	w = f.do(t, http.MethodPost, "/api/v1/products", gin.H{
		"name":          "A4 Paper",
		"hsn_code":      "4802",
		"gst_percent":   "18",
		"cost_price":    "250",
		"selling_price": "500",
		"opening_stock": "50",
		"unit":          "PKT",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var product catalogdomain.Product
	decodeData(t, w, &product)

	w = f.do(t, http.MethodPost, "/api/v1/invoices", gin.H{
		"party_id":       party.ID,
		"invoice_date":   "2024-07-15",
		"is_gst_invoice": true,
		"payment_mode":   "CASH",
		"lines": []gin.H{
			{"product_id": product.ID, "quantity": "2", "rate": "500"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var invoice billingdomain.Invoice
	decodeData(t, w, &invoice)
	assert.Equal(t, "INV/2425/0001", invoice.InvoiceNumber)
	assert.Equal(t, "1180.00", invoice.TotalAmount.StringFixed(2))
	assert.Equal(t, billingdomain.StatusPaid, invoice.PaymentStatus)

	w = f.do(t, http.MethodGet, "/api/v1/reports/sales-register?from=2024-07-01&to=2024-07-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var register billingdomain.RegisterSummary
	decodeData(t, w, &register)
	assert.Equal(t, 1, register.Count)
	assert.Equal(t, "1180.00", register.TotalAmount.StringFixed(2))

	w = f.do(t, http.MethodGet, "/api/v1/reports/cash-book?from=2024-07-01&to=2024-07-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cashBook acctdomain.CashBookReport
	decodeData(t, w, &cashBook)
	assert.Equal(t, "1180.00", cashBook.TotalReceipts.StringFixed(2))
}

func TestReceiptUpdatesPartyBalance(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/parties", gin.H{
		"party_type":      "CUSTOMER",
		"name":            "Gupta Stores",
		"state_code":      "27",
		"opening_balance": "5000",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var party partydomain.Party
	decodeData(t, w, &party)

	w = f.do(t, http.MethodPost, "/api/v1/receipts", gin.H{
		"party_id":     party.ID,
		"date":         "2024-07-20",
		"amount":       "2000",
		"payment_mode": "CASH",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/parties/"+party.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updated partydomain.Party
	decodeData(t, w, &updated)
	assert.Equal(t, "3000.00", updated.CurrentBalance.StringFixed(2))

	w = f.do(t, http.MethodGet, "/api/v1/reports/outstanding", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var outstanding struct {
		TotalReceivable string `json:"total_receivable"`
	}
	decodeData(t, w, &outstanding)
	assert.Equal(t, "3000", outstanding.TotalReceivable)
}

func TestErrorMapping(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/products/123456789", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/products/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/products", gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/invoices", gin.H{
		"party_id":     "123456789",
		"invoice_date": "2024-07-15",
		"payment_mode": "CASH",
		"lines":        []gin.H{},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidateGSTINEndpoint(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/tools/validate-gstin?gstin=27AAAAA0000A1Z5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Valid     bool   `json:"valid"`
		StateCode string `json:"state_code"`
	}
	decodeData(t, w, &result)
	assert.True(t, result.Valid)
	assert.Equal(t, "27", result.StateCode)

	w = f.do(t, http.MethodGet, "/api/v1/tools/validate-gstin", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompanyProfileEndpoint(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/company", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile company.Profile
	decodeData(t, w, &profile)
	assert.Equal(t, "BillPro Traders", profile.Name)
	assert.Equal(t, "27AAAAA0000A1Z5", profile.GSTIN)
}
