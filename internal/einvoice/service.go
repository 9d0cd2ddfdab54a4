package einvoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	billingdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/clock"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/company"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/config"
	obsmetrics "github.com/AtharvaMeherkar/billpro-billing-software/internal/observability/metrics"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotGSTInvoice = errors.New("einvoice_requires_gst_invoice")

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Config  *config.Config
	Company *company.Store
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	cfg     *config.Config
	company *company.Store
	metrics *obsmetrics.Metrics
}

func NewService(p Params) *Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("einvoice.service"),
		clock:   p.Clock,
		cfg:     p.Config,
		company: p.Company,
		metrics: p.Metrics,
	}
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (*billingdomain.Invoice, *partydomain.Party, error) {
	var invoice billingdomain.Invoice
	err := s.db.WithContext(ctx).Preload("Items").First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, billingdomain.ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !invoice.IsGSTInvoice {
		return nil, nil, ErrNotGSTInvoice
	}

	var party partydomain.Party
	if err := s.db.WithContext(ctx).First(&party, "id = ?", invoice.PartyID).Error; err != nil {
		return nil, nil, err
	}
	return &invoice, &party, nil
}

// Document builds the e-invoice payload without persisting anything,
// for preview.
func (s *Service) Document(ctx context.Context, id snowflake.ID) (*Document, error) {
	invoice, party, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return Build(invoice, party, s.company.Get()), nil
}

// Generate writes the e-invoice JSON to the configured directory and
// marks the invoice. Returns the file path.
func (s *Service) Generate(ctx context.Context, id snowflake.ID) (string, error) {
	invoice, party, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}

	doc := Build(invoice, party, s.company.Get())
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.cfg.EInvoiceDir, 0o755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("einvoice_%s_%s.json",
		strings.ReplaceAll(invoice.InvoiceNumber, "/", "_"),
		s.clock.Now().Format("20060102_150405"))
	path := filepath.Join(s.cfg.EInvoiceDir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Model(&billingdomain.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]any{
			"einvoice_generated": true,
			"einvoice_json_path": path,
			"einvoice_payload":   datatypes.JSON(payload),
		}).Error
	if err != nil {
		return "", err
	}

	s.metrics.RecordEInvoiceGenerated()
	s.log.Info("e-invoice generated",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("path", path))
	return path, nil
}
