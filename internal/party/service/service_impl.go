package service

import (
	"context"
	"errors"
	"strings"
	"time"

	obsmetrics "github.com/AtharvaMeherkar/billpro-billing-software/internal/observability/metrics"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *obsmetrics.Metrics
}

func NewService(p Params) partydomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("party.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
	}
}

// Create inserts the party. A non-zero opening balance is posted as an
// OPENING transaction so the ledger explains the starting figure.
func (s *Service) Create(ctx context.Context, req partydomain.CreateRequest) (*partydomain.Party, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, partydomain.ErrInvalidName
	}
	if req.Type != partydomain.PartyCustomer && req.Type != partydomain.PartySupplier {
		return nil, partydomain.ErrInvalidType
	}

	party := partydomain.Party{
		ID:             s.genID.Generate(),
		Type:           req.Type,
		Name:           req.Name,
		GSTIN:          req.GSTIN,
		PAN:            req.PAN,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		City:           req.City,
		Pincode:        req.Pincode,
		StateCode:      req.StateCode,
		OpeningBalance: req.OpeningBalance,
		CreditLimit:    req.CreditLimit,
		Active:         true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&party).Error; err != nil {
			return err
		}
		if req.OpeningBalance.IsZero() {
			return nil
		}

		in := partydomain.PostInput{
			PartyID: party.ID,
			Type:    partydomain.TxnOpening,
			Note:    "Opening balance",
		}
		// Opening balance is the outstanding amount: customer owes us,
		// or we owe the supplier. Customers open on the debit side,
		// suppliers on the credit side.
		amount := req.OpeningBalance
		debitSide := req.Type == partydomain.PartyCustomer
		if amount.IsNegative() {
			amount = amount.Neg()
			debitSide = !debitSide
		}
		if debitSide {
			in.Debit = amount
		} else {
			in.Credit = amount
		}
		_, err := s.Post(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	// re-read so the returned balance reflects the opening posting
	return s.Get(ctx, party.ID)
}

func (s *Service) Update(ctx context.Context, req partydomain.UpdateRequest) (*partydomain.Party, error) {
	var party partydomain.Party
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&party, "id = ?", req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return partydomain.ErrNotFound
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return partydomain.ErrInvalidName
			}
			party.Name = name
		}
		if req.GSTIN != nil {
			party.GSTIN = req.GSTIN
		}
		if req.PAN != nil {
			party.PAN = req.PAN
		}
		if req.Phone != nil {
			party.Phone = req.Phone
		}
		if req.Email != nil {
			party.Email = req.Email
		}
		if req.Address != nil {
			party.Address = req.Address
		}
		if req.City != nil {
			party.City = req.City
		}
		if req.Pincode != nil {
			party.Pincode = req.Pincode
		}
		if req.StateCode != nil {
			party.StateCode = *req.StateCode
		}
		if req.CreditLimit != nil {
			party.CreditLimit = *req.CreditLimit
		}
		party.UpdatedAt = time.Now().UTC()

		return tx.Save(&party).Error
	})
	if err != nil {
		return nil, err
	}
	return &party, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*partydomain.Party, error) {
	var party partydomain.Party
	err := s.db.WithContext(ctx).First(&party, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, partydomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &party, nil
}

func (s *Service) List(ctx context.Context, req partydomain.ListRequest) ([]partydomain.Party, error) {
	q := s.db.WithContext(ctx).Model(&partydomain.Party{})

	if !req.ShowInactive {
		q = q.Where("active = ?", true)
	}
	if req.Type != "" {
		q = q.Where("party_type = ?", req.Type)
	}
	if req.Search != "" {
		like := "%" + strings.ToLower(req.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(gstin, '')) LIKE ? OR COALESCE(phone, '') LIKE ?", like, like, like)
	}

	var parties []partydomain.Party
	if err := q.Order("name ASC").Find(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

// Deactivate refuses while money is still owed either way.
func (s *Service) Deactivate(ctx context.Context, id snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var party partydomain.Party
		if err := tx.First(&party, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return partydomain.ErrNotFound
			}
			return err
		}
		if !party.CurrentBalance.IsZero() {
			return partydomain.ErrNonZeroBalance
		}
		return tx.Model(&partydomain.Party{}).
			Where("id = ?", id).
			Updates(map[string]any{"active": false, "updated_at": time.Now().UTC()}).Error
	})
}

// Post appends one transaction and advances CurrentBalance inside the
// caller's transaction. Debit raises the balance, credit lowers it;
// providing both, neither, or a negative amount is rejected.
func (s *Service) Post(ctx context.Context, tx *gorm.DB, in partydomain.PostInput) (*partydomain.PartyTransaction, error) {
	if in.Debit.IsNegative() || in.Credit.IsNegative() {
		return nil, partydomain.ErrInvalidAmount
	}
	if in.Debit.IsPositive() == in.Credit.IsPositive() {
		return nil, partydomain.ErrInvalidAmount
	}

	var party partydomain.Party
	err := tx.WithContext(ctx).First(&party, "id = ?", in.PartyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, partydomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	balance := party.CurrentBalance.Add(in.Debit).Sub(in.Credit)

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	txn := partydomain.PartyTransaction{
		ID:              s.genID.Generate(),
		PartyID:         in.PartyID,
		TransactionDate: date,
		Type:            in.Type,
		Debit:           in.Debit,
		Credit:          in.Credit,
		BalanceAfter:    balance,
		RefType:         in.RefType,
		RefID:           in.RefID,
		RefNumber:       in.RefNumber,
		Note:            in.Note,
	}
	if err := tx.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Model(&partydomain.Party{}).
		Where("id = ?", in.PartyID).
		Updates(map[string]any{"current_balance": balance, "updated_at": time.Now().UTC()}).Error; err != nil {
		return nil, err
	}
	s.metrics.RecordLedgerPosting(in.Type)
	return &txn, nil
}

func (s *Service) TransactionsFor(ctx context.Context, partyID snowflake.ID, limit int) ([]partydomain.PartyTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var txns []partydomain.PartyTransaction
	err := s.db.WithContext(ctx).
		Where("party_id = ?", partyID).
		Order("transaction_date DESC, id DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// TotalReceivable sums positive customer balances. Customers holding
// an advance (negative balance) do not offset it.
func (s *Service) TotalReceivable(ctx context.Context) (decimal.Decimal, error) {
	return s.sumBalances(ctx, partydomain.PartyCustomer, false)
}

// TotalPayable sums what we owe suppliers. Payables sit on the credit
// side, so this is the magnitude of negative supplier balances.
func (s *Service) TotalPayable(ctx context.Context) (decimal.Decimal, error) {
	return s.sumBalances(ctx, partydomain.PartySupplier, true)
}

func (s *Service) sumBalances(ctx context.Context, partyType partydomain.PartyType, creditSide bool) (decimal.Decimal, error) {
	cmp := "current_balance > 0"
	if creditSide {
		cmp = "current_balance < 0"
	}

	var parties []partydomain.Party
	err := s.db.WithContext(ctx).
		Where("party_type = ? AND active = ? AND "+cmp, partyType, true).
		Find(&parties).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range parties {
		total = total.Add(p.CurrentBalance)
	}
	if creditSide {
		total = total.Neg()
	}
	return total, nil
}
