package server

import (
	"context"
	"net/http"
	"time"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	billingdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/domain"
	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/clock"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/company"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/config"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/einvoice"
	fydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear/domain"
	obsmetrics "github.com/AtharvaMeherkar/billpro-billing-software/internal/observability/metrics"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	payrolldomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll/domain"
	stockdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(metrics *obsmetrics.Metrics, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	company     *company.Store
	catalogSvc  catalogdomain.Service
	stockSvc    stockdomain.Service
	partySvc    partydomain.Service
	billingSvc  billingdomain.Service
	books       acctdomain.Books
	yearsSvc    fydomain.Service
	payrollSvc  payrolldomain.Service
	einvoiceSvc *einvoice.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Company     *company.Store
	CatalogSvc  catalogdomain.Service
	StockSvc    stockdomain.Service
	PartySvc    partydomain.Service
	BillingSvc  billingdomain.Service
	Books       acctdomain.Books
	YearsSvc    fydomain.Service
	PayrollSvc  payrolldomain.Service
	EInvoiceSvc *einvoice.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		log:         p.Log.Named("server"),
		genID:       p.GenID,
		clock:       p.Clock,
		company:     p.Company,
		catalogSvc:  p.CatalogSvc,
		stockSvc:    p.StockSvc,
		partySvc:    p.PartySvc,
		billingSvc:  p.BillingSvc,
		books:       p.Books,
		yearsSvc:    p.YearsSvc,
		payrollSvc:  p.PayrollSvc,
		einvoiceSvc: p.EInvoiceSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/company", s.GetCompanyProfile)
	api.POST("/company/reload", s.ReloadCompanyProfile)
	api.GET("/tools/validate-gstin", s.ValidateGSTIN)

	api.GET("/financial-years", s.ListFinancialYears)
	api.POST("/financial-years/:code/close", s.CloseFinancialYear)

	api.POST("/categories", s.CreateCategory)
	api.GET("/categories", s.ListCategories)
	api.DELETE("/categories/:id", s.DeleteCategory)

	api.POST("/products", s.CreateProduct)
	api.GET("/products", s.ListProducts)
	api.GET("/products/low-stock", s.ListLowStockProducts)
	api.GET("/products/inventory-value", s.InventoryValue)
	api.GET("/products/:id", s.GetProduct)
	api.PATCH("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeactivateProduct)
	api.GET("/products/:id/movements", s.ListStockMovements)
	api.POST("/products/:id/adjust-stock", s.AdjustStock)

	api.POST("/parties", s.CreateParty)
	api.GET("/parties", s.ListParties)
	api.GET("/parties/:id", s.GetParty)
	api.PATCH("/parties/:id", s.UpdateParty)
	api.DELETE("/parties/:id", s.DeactivateParty)
	api.GET("/parties/:id/transactions", s.ListPartyTransactions)

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoice)
	api.POST("/invoices/:id/cancel", s.CancelInvoice)
	api.GET("/invoices/:id/einvoice", s.PreviewEInvoice)
	api.POST("/invoices/:id/einvoice", s.GenerateEInvoice)

	api.POST("/purchases", s.CreatePurchase)
	api.GET("/purchases", s.ListPurchases)
	api.GET("/purchases/:id", s.GetPurchase)
	api.POST("/purchases/:id/cancel", s.CancelPurchase)

	api.POST("/expense-categories", s.CreateExpenseCategory)
	api.GET("/expense-categories", s.ListExpenseCategories)
	api.POST("/expenses", s.RecordExpense)
	api.GET("/expenses", s.ListExpenses)
	api.POST("/receipts", s.RecordReceipt)
	api.POST("/payments", s.RecordPayment)

	api.GET("/reports/cash-book", s.CashBook)
	api.GET("/reports/bank-book", s.BankBook)
	api.GET("/reports/sales-register", s.SalesRegister)
	api.GET("/reports/purchase-register", s.PurchaseRegister)
	api.GET("/reports/outstanding", s.Outstanding)

	api.POST("/employees", s.CreateEmployee)
	api.GET("/employees", s.ListEmployees)
	api.GET("/employees/:id", s.GetEmployee)
	api.PATCH("/employees/:id", s.UpdateEmployee)
	api.POST("/payroll/process", s.ProcessPayroll)
	api.GET("/payroll/slips", s.ListSalarySlips)
	api.GET("/payroll/slips/:id", s.GetSalarySlip)
	api.POST("/payroll/slips/:id/pay", s.PaySalary)
	api.GET("/payroll/summary", s.PayrollSummary)
}
