package service

import (
	"context"
	"errors"
	"time"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	billingdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/domain"
	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/clock"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/company"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/config"
	fydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear/domain"
	obsmetrics "github.com/AtharvaMeherkar/billpro-billing-software/internal/observability/metrics"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/tax"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Config   *config.Config
	Company  *company.Store
	Years    fydomain.Service
	Composer acctdomain.Composer
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	cfg      *config.Config
	company  *company.Store
	years    fydomain.Service
	composer acctdomain.Composer
	metrics  *obsmetrics.Metrics
}

func NewService(p Params) billingdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("billing.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		cfg:      p.Config,
		company:  p.Company,
		years:    p.Years,
		composer: p.Composer,
		metrics:  p.Metrics,
	}
}

// builtLine is a resolved, tax-applied document line plus its stock leg.
type builtLine struct {
	product  *catalogdomain.Product
	quantity decimal.Decimal
	rate     decimal.Decimal
	discPct  decimal.Decimal
	discAmt  decimal.Decimal
	taxable  decimal.Decimal
}

// buildLines resolves line requests against the product master. In
// lenient mode a line with quantity ≤ 0 or an unknown product is
// dropped; strict mode turns the unknown product into an error.
func (s *Service) buildLines(ctx context.Context, tx *gorm.DB, lines []billingdomain.LineRequest) ([]builtLine, error) {
	built := make([]builtLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		var product catalogdomain.Product
		err := tx.WithContext(ctx).First(&product, "id = ?", line.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.cfg.StrictLines {
				return nil, billingdomain.ErrLineProductMissing
			}
			s.log.Warn("skipping line with unknown product",
				zap.String("product_id", line.ProductID.String()))
			continue
		}
		if err != nil {
			return nil, err
		}

		gross := line.Quantity.Mul(line.Rate)
		discount := decimal.Zero
		if line.DiscountPercent.IsPositive() {
			discount = gross.Mul(line.DiscountPercent).Div(decimal.NewFromInt(100))
		}

		built = append(built, builtLine{
			product:  &product,
			quantity: line.Quantity,
			rate:     line.Rate,
			discPct:  line.DiscountPercent,
			discAmt:  discount,
			taxable:  gross.Sub(discount),
		})
	}
	if len(built) == 0 {
		return nil, billingdomain.ErrNoValidLines
	}
	return built, nil
}

// resolveIGST compares the seller's state from the company profile
// with the buyer's, preferring the party's state code and falling back
// to the one encoded in its GSTIN.
func (s *Service) resolveIGST(party *partydomain.Party, isGST bool) bool {
	if !isGST {
		return false
	}
	buyerState := party.StateCode
	if buyerState == "" && party.GSTIN != nil {
		buyerState = tax.StateCodeFromGSTIN(*party.GSTIN)
	}
	return tax.IsInterstate(s.company.Get().Address.StateCode, buyerState)
}

func (s *Service) loadParty(ctx context.Context, tx *gorm.DB, id snowflake.ID, role partydomain.PartyType) (*partydomain.Party, error) {
	var party partydomain.Party
	err := tx.WithContext(ctx).First(&party, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billingdomain.ErrPartyNotFound
	}
	if err != nil {
		return nil, err
	}
	if !party.Active {
		return nil, billingdomain.ErrPartyInactive
	}
	if party.Type != role {
		return nil, billingdomain.ErrWrongPartyRole
	}
	return &party, nil
}

func (s *Service) CreateInvoice(ctx context.Context, req billingdomain.CreateInvoiceRequest) (*billingdomain.Invoice, error) {
	year, err := s.years.GetOrCreateCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if req.Mode == "" {
		req.Mode = acctdomain.ModeCash
	}
	if !req.Mode.Valid() {
		return nil, acctdomain.ErrInvalidPaymentMode
	}
	if req.Date.IsZero() {
		req.Date = s.clock.Now()
	}

	var invoice billingdomain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		party, err := s.loadParty(ctx, tx, req.PartyID, partydomain.PartyCustomer)
		if err != nil {
			return err
		}

		lines, err := s.buildLines(ctx, tx, req.Lines)
		if err != nil {
			return err
		}

		number, err := s.years.NextDocumentNumber(ctx, tx, year.ID, fydomain.KindInvoice, s.cfg.InvoicePrefix)
		if err != nil {
			return err
		}

		isIGST := s.resolveIGST(party, req.IsGSTInvoice)
		invoice = billingdomain.Invoice{
			ID:              s.genID.Generate(),
			InvoiceNumber:   number,
			InvoiceDate:     req.Date,
			FinancialYearID: year.ID,
			PartyID:         party.ID,
			IsGSTInvoice:    req.IsGSTInvoice,
			IsIGST:          isIGST,
			DiscountAmount:  req.DiscountAmount,
			PaymentMode:     req.Mode,
			Notes:           req.Notes,
			Status:          billingdomain.DocActive,
		}

		saleLines := make([]acctdomain.DocumentLine, 0, len(lines))
		for _, line := range lines {
			item := billingdomain.InvoiceItem{
				ID:              s.genID.Generate(),
				InvoiceID:       invoice.ID,
				ProductID:       line.product.ID,
				Description:     line.product.Name,
				HSNCode:         line.product.HSNCode,
				Quantity:        line.quantity,
				Unit:            line.product.Unit,
				Rate:            line.rate,
				DiscountPercent: line.discPct,
				DiscountAmount:  line.discAmt,
				TaxableAmount:   line.taxable,
			}
			if req.IsGSTInvoice {
				item.GSTPercent = line.product.GSTPercent
				item.ApplyLineTax(isIGST)
			} else {
				item.TotalAmount = line.taxable
			}
			invoice.Items = append(invoice.Items, item)

			saleLines = append(saleLines, acctdomain.DocumentLine{
				ProductID: line.product.ID,
				Quantity:  line.quantity,
			})
		}

		invoice.ComputeTotals()

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		return s.composer.PostSale(ctx, tx, acctdomain.SaleEvent{
			Date:            invoice.InvoiceDate,
			InvoiceID:       invoice.ID,
			InvoiceNumber:   invoice.InvoiceNumber,
			PartyID:         party.ID,
			PartyName:       party.Name,
			Subtotal:        invoice.Subtotal,
			Total:           invoice.TotalAmount,
			Mode:            invoice.PaymentMode,
			FinancialYearID: year.ID,
			Lines:           saleLines,
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordDocumentCreated("invoice")
	s.log.Info("invoice created",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total", invoice.TotalAmount.String()))
	return &invoice, nil
}

// CancelInvoice flips the document to CANCELLED and posts the
// compensating entries. Cancelling twice is a no-op.
func (s *Service) CancelInvoice(ctx context.Context, id snowflake.ID) (*billingdomain.Invoice, error) {
	var invoice billingdomain.Invoice
	alreadyCancelled := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return billingdomain.ErrNotFound
			}
			return err
		}
		if invoice.Status == billingdomain.DocCancelled {
			s.log.Warn("invoice already cancelled",
				zap.String("invoice_number", invoice.InvoiceNumber))
			alreadyCancelled = true
			return nil
		}

		var party partydomain.Party
		if err := tx.First(&party, "id = ?", invoice.PartyID).Error; err != nil {
			return err
		}

		lines := make([]acctdomain.DocumentLine, 0, len(invoice.Items))
		for _, item := range invoice.Items {
			lines = append(lines, acctdomain.DocumentLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		if err := s.composer.PostSaleReversal(ctx, tx, acctdomain.SaleEvent{
			Date:          s.clock.Now(),
			InvoiceID:     invoice.ID,
			InvoiceNumber: invoice.InvoiceNumber,
			PartyID:       party.ID,
			PartyName:     party.Name,
			Subtotal:      invoice.Subtotal,
			Total:         invoice.TotalAmount,
			Mode:          invoice.PaymentMode,
			Lines:         lines,
		}); err != nil {
			return err
		}

		invoice.Status = billingdomain.DocCancelled
		return tx.Model(&billingdomain.Invoice{}).
			Where("id = ?", invoice.ID).
			Updates(map[string]any{"status": billingdomain.DocCancelled, "updated_at": time.Now().UTC()}).Error
	})
	if err != nil {
		return nil, err
	}
	if !alreadyCancelled {
		s.metrics.RecordDocumentCancelled("invoice")
	}
	return &invoice, nil
}

func (s *Service) GetInvoice(ctx context.Context, id snowflake.ID) (*billingdomain.Invoice, error) {
	var invoice billingdomain.Invoice
	err := s.db.WithContext(ctx).Preload("Items").First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billingdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *Service) ListInvoices(ctx context.Context, req billingdomain.ListRequest) ([]billingdomain.Invoice, error) {
	q := s.db.WithContext(ctx).Model(&billingdomain.Invoice{})
	if !req.From.IsZero() {
		q = q.Where("invoice_date >= ?", req.From)
	}
	if !req.To.IsZero() {
		q = q.Where("invoice_date <= ?", req.To)
	}
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var invoices []billingdomain.Invoice
	if err := q.Order("invoice_date DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *Service) SalesRegister(ctx context.Context, from, to time.Time) (*billingdomain.RegisterSummary, error) {
	invoices, err := s.ListInvoices(ctx, billingdomain.ListRequest{
		From: from, To: to, Status: billingdomain.DocActive,
	})
	if err != nil {
		return nil, err
	}
	summary := &billingdomain.RegisterSummary{
		Subtotal:    decimal.Zero,
		TaxAmount:   decimal.Zero,
		TotalAmount: decimal.Zero,
	}
	for _, inv := range invoices {
		summary.Count++
		summary.Subtotal = summary.Subtotal.Add(inv.Subtotal)
		summary.TaxAmount = summary.TaxAmount.Add(inv.TaxAmount)
		summary.TotalAmount = summary.TotalAmount.Add(inv.TotalAmount)
	}
	return summary, nil
}

func (s *Service) CreatePurchase(ctx context.Context, req billingdomain.CreatePurchaseRequest) (*billingdomain.Purchase, error) {
	year, err := s.years.GetOrCreateCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if req.Mode == "" {
		req.Mode = acctdomain.ModeCash
	}
	if !req.Mode.Valid() {
		return nil, acctdomain.ErrInvalidPaymentMode
	}
	if req.Date.IsZero() {
		req.Date = s.clock.Now()
	}

	var purchase billingdomain.Purchase
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		party, err := s.loadParty(ctx, tx, req.PartyID, partydomain.PartySupplier)
		if err != nil {
			return err
		}

		lines, err := s.buildLines(ctx, tx, req.Lines)
		if err != nil {
			return err
		}

		number, err := s.years.NextDocumentNumber(ctx, tx, year.ID, fydomain.KindPurchase, s.cfg.PurchasePrefix)
		if err != nil {
			return err
		}

		isIGST := s.resolveIGST(party, req.IsGSTPurchase)
		purchase = billingdomain.Purchase{
			ID:                 s.genID.Generate(),
			PurchaseNumber:     number,
			PurchaseDate:       req.Date,
			SupplierBillNumber: req.SupplierBillNumber,
			FinancialYearID:    year.ID,
			PartyID:            party.ID,
			IsGSTPurchase:      req.IsGSTPurchase,
			IsIGST:             isIGST,
			DiscountAmount:     req.DiscountAmount,
			PaymentMode:        req.Mode,
			Notes:              req.Notes,
			Status:             billingdomain.DocActive,
		}

		purchaseLines := make([]acctdomain.DocumentLine, 0, len(lines))
		for _, line := range lines {
			item := billingdomain.PurchaseItem{
				ID:              s.genID.Generate(),
				PurchaseID:      purchase.ID,
				ProductID:       line.product.ID,
				Description:     line.product.Name,
				HSNCode:         line.product.HSNCode,
				Quantity:        line.quantity,
				Unit:            line.product.Unit,
				Rate:            line.rate,
				DiscountPercent: line.discPct,
				DiscountAmount:  line.discAmt,
				TaxableAmount:   line.taxable,
			}
			if req.IsGSTPurchase {
				item.GSTPercent = line.product.GSTPercent
				item.ApplyLineTax(isIGST)
			} else {
				item.TotalAmount = line.taxable
			}
			purchase.Items = append(purchase.Items, item)

			purchaseLines = append(purchaseLines, acctdomain.DocumentLine{
				ProductID: line.product.ID,
				Quantity:  line.quantity,
			})
		}

		purchase.ComputeTotals()

		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		return s.composer.PostPurchase(ctx, tx, acctdomain.PurchaseEvent{
			Date:            purchase.PurchaseDate,
			PurchaseID:      purchase.ID,
			PurchaseNumber:  purchase.PurchaseNumber,
			PartyID:         party.ID,
			PartyName:       party.Name,
			Subtotal:        purchase.Subtotal,
			Total:           purchase.TotalAmount,
			Mode:            purchase.PaymentMode,
			FinancialYearID: year.ID,
			Lines:           purchaseLines,
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordDocumentCreated("purchase")
	s.log.Info("purchase created",
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("total", purchase.TotalAmount.String()))
	return &purchase, nil
}

func (s *Service) CancelPurchase(ctx context.Context, id snowflake.ID) (*billingdomain.Purchase, error) {
	var purchase billingdomain.Purchase
	alreadyCancelled := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&purchase, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return billingdomain.ErrNotFound
			}
			return err
		}
		if purchase.Status == billingdomain.DocCancelled {
			s.log.Warn("purchase already cancelled",
				zap.String("purchase_number", purchase.PurchaseNumber))
			alreadyCancelled = true
			return nil
		}

		var party partydomain.Party
		if err := tx.First(&party, "id = ?", purchase.PartyID).Error; err != nil {
			return err
		}

		lines := make([]acctdomain.DocumentLine, 0, len(purchase.Items))
		for _, item := range purchase.Items {
			lines = append(lines, acctdomain.DocumentLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		if err := s.composer.PostPurchaseReversal(ctx, tx, acctdomain.PurchaseEvent{
			Date:           s.clock.Now(),
			PurchaseID:     purchase.ID,
			PurchaseNumber: purchase.PurchaseNumber,
			PartyID:        party.ID,
			PartyName:      party.Name,
			Subtotal:       purchase.Subtotal,
			Total:          purchase.TotalAmount,
			Mode:           purchase.PaymentMode,
			Lines:          lines,
		}); err != nil {
			return err
		}

		purchase.Status = billingdomain.DocCancelled
		return tx.Model(&billingdomain.Purchase{}).
			Where("id = ?", purchase.ID).
			Updates(map[string]any{"status": billingdomain.DocCancelled, "updated_at": time.Now().UTC()}).Error
	})
	if err != nil {
		return nil, err
	}
	if !alreadyCancelled {
		s.metrics.RecordDocumentCancelled("purchase")
	}
	return &purchase, nil
}

func (s *Service) GetPurchase(ctx context.Context, id snowflake.ID) (*billingdomain.Purchase, error) {
	var purchase billingdomain.Purchase
	err := s.db.WithContext(ctx).Preload("Items").First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billingdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (s *Service) ListPurchases(ctx context.Context, req billingdomain.ListRequest) ([]billingdomain.Purchase, error) {
	q := s.db.WithContext(ctx).Model(&billingdomain.Purchase{})
	if !req.From.IsZero() {
		q = q.Where("purchase_date >= ?", req.From)
	}
	if !req.To.IsZero() {
		q = q.Where("purchase_date <= ?", req.To)
	}
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var purchases []billingdomain.Purchase
	if err := q.Order("purchase_date DESC, id DESC").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *Service) PurchaseRegister(ctx context.Context, from, to time.Time) (*billingdomain.RegisterSummary, error) {
	purchases, err := s.ListPurchases(ctx, billingdomain.ListRequest{
		From: from, To: to, Status: billingdomain.DocActive,
	})
	if err != nil {
		return nil, err
	}
	summary := &billingdomain.RegisterSummary{
		Subtotal:    decimal.Zero,
		TaxAmount:   decimal.Zero,
		TotalAmount: decimal.Zero,
	}
	for _, p := range purchases {
		summary.Count++
		summary.Subtotal = summary.Subtotal.Add(p.Subtotal)
		summary.TaxAmount = summary.TaxAmount.Add(p.TaxAmount)
		summary.TotalAmount = summary.TotalAmount.Add(p.TotalAmount)
	}
	return summary, nil
}
