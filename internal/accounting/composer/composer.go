// Package composer turns business events into their full set of
// ledger postings.
package composer

import (
	"context"
	"fmt"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	stockdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Parties partydomain.Service
	Stock   stockdomain.Service
}

type Composer struct {
	log     *zap.Logger
	genID   *snowflake.Node
	parties partydomain.Service
	stock   stockdomain.Service
}

func NewComposer(p Params) acctdomain.Composer {
	return &Composer{
		log:     p.Log.Named("accounting.composer"),
		genID:   p.GenID,
		parties: p.Parties,
		stock:   p.Stock,
	}
}

// PostSale deducts stock per line, books the sale on the journal, and
// records the money leg: a party debit for credit sales, a cash or
// bank receipt otherwise.
func (c *Composer) PostSale(ctx context.Context, tx *gorm.DB, ev acctdomain.SaleEvent) error {
	if !ev.Mode.Valid() {
		return acctdomain.ErrInvalidPaymentMode
	}

	for _, line := range ev.Lines {
		if _, err := c.stock.DeductStockTx(ctx, tx, stockdomain.MovementInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			RefType:   stockdomain.RefInvoice,
			RefID:     &ev.InvoiceID,
			RefNumber: ev.InvoiceNumber,
			Note:      fmt.Sprintf("Sale: %s", ev.InvoiceNumber),
		}); err != nil {
			return err
		}
	}

	entry := acctdomain.JournalEntry{
		ID:              c.genID.Generate(),
		EntryDate:       ev.Date,
		AccountType:     acctdomain.AccountSales,
		AccountName:     "Sales",
		Credit:          ev.Subtotal,
		RefType:         stockdomain.RefInvoice,
		RefID:           &ev.InvoiceID,
		RefNumber:       ev.InvoiceNumber,
		Narration:       fmt.Sprintf("Sale to %s", ev.PartyName),
		FinancialYearID: &ev.FinancialYearID,
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return err
	}

	switch ev.Mode {
	case acctdomain.ModeCredit:
		_, err := c.parties.Post(ctx, tx, partydomain.PostInput{
			PartyID:   ev.PartyID,
			Date:      ev.Date,
			Type:      partydomain.TxnSale,
			Debit:     ev.Total,
			RefType:   stockdomain.RefInvoice,
			RefID:     &ev.InvoiceID,
			RefNumber: ev.InvoiceNumber,
			Note:      fmt.Sprintf("Sale Invoice %s", ev.InvoiceNumber),
		})
		return err
	case acctdomain.ModeCash:
		return tx.WithContext(ctx).Create(&acctdomain.CashTransaction{
			ID:          c.genID.Generate(),
			Date:        ev.Date,
			Type:        acctdomain.CashReceipt,
			PartyID:     &ev.PartyID,
			Description: fmt.Sprintf("Cash sale to %s", ev.PartyName),
			Receipt:     ev.Total,
			RefType:     stockdomain.RefInvoice,
			RefID:       &ev.InvoiceID,
			RefNumber:   ev.InvoiceNumber,
		}).Error
	default:
		return tx.WithContext(ctx).Create(&acctdomain.BankTransaction{
			ID:          c.genID.Generate(),
			Date:        ev.Date,
			Type:        acctdomain.BankDeposit,
			PartyID:     &ev.PartyID,
			Description: fmt.Sprintf("Bank sale to %s", ev.PartyName),
			Deposit:     ev.Total,
			RefType:     stockdomain.RefInvoice,
			RefID:       &ev.InvoiceID,
			RefNumber:   ev.InvoiceNumber,
		}).Error
	}
}

// PostSaleReversal restores stock and, for credit sales, credits the
// party back. Cash and bank rows from the original sale stay put.
func (c *Composer) PostSaleReversal(ctx context.Context, tx *gorm.DB, ev acctdomain.SaleEvent) error {
	for _, line := range ev.Lines {
		if _, err := c.stock.AddStockTx(ctx, tx, stockdomain.MovementInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			RefType:   stockdomain.RefInvoiceCancel,
			RefID:     &ev.InvoiceID,
			RefNumber: ev.InvoiceNumber,
			Note:      fmt.Sprintf("Invoice cancellation: %s", ev.InvoiceNumber),
		}); err != nil {
			return err
		}
	}

	if ev.Mode != acctdomain.ModeCredit {
		return nil
	}
	_, err := c.parties.Post(ctx, tx, partydomain.PostInput{
		PartyID:   ev.PartyID,
		Date:      ev.Date,
		Type:      partydomain.TxnSaleReversal,
		Credit:    ev.Total,
		RefType:   stockdomain.RefInvoice,
		RefID:     &ev.InvoiceID,
		RefNumber: ev.InvoiceNumber,
		Note:      fmt.Sprintf("Sale Invoice Cancelled: %s", ev.InvoiceNumber),
	})
	return err
}

// PostPurchase is the inward mirror of PostSale: stock in, PURCHASE
// journal debit, supplier credit for credit purchases, cash/bank
// payment otherwise.
func (c *Composer) PostPurchase(ctx context.Context, tx *gorm.DB, ev acctdomain.PurchaseEvent) error {
	if !ev.Mode.Valid() {
		return acctdomain.ErrInvalidPaymentMode
	}

	for _, line := range ev.Lines {
		if _, err := c.stock.AddStockTx(ctx, tx, stockdomain.MovementInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			RefType:   stockdomain.RefPurchase,
			RefID:     &ev.PurchaseID,
			RefNumber: ev.PurchaseNumber,
			Note:      fmt.Sprintf("Purchase: %s", ev.PurchaseNumber),
		}); err != nil {
			return err
		}
	}

	entry := acctdomain.JournalEntry{
		ID:              c.genID.Generate(),
		EntryDate:       ev.Date,
		AccountType:     acctdomain.AccountPurchase,
		AccountName:     "Purchases",
		Debit:           ev.Subtotal,
		RefType:         stockdomain.RefPurchase,
		RefID:           &ev.PurchaseID,
		RefNumber:       ev.PurchaseNumber,
		Narration:       fmt.Sprintf("Purchase from %s", ev.PartyName),
		FinancialYearID: &ev.FinancialYearID,
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return err
	}

	switch ev.Mode {
	case acctdomain.ModeCredit:
		_, err := c.parties.Post(ctx, tx, partydomain.PostInput{
			PartyID:   ev.PartyID,
			Date:      ev.Date,
			Type:      partydomain.TxnPurchase,
			Credit:    ev.Total,
			RefType:   stockdomain.RefPurchase,
			RefID:     &ev.PurchaseID,
			RefNumber: ev.PurchaseNumber,
			Note:      fmt.Sprintf("Purchase %s", ev.PurchaseNumber),
		})
		return err
	case acctdomain.ModeCash:
		return tx.WithContext(ctx).Create(&acctdomain.CashTransaction{
			ID:          c.genID.Generate(),
			Date:        ev.Date,
			Type:        acctdomain.CashPayment,
			PartyID:     &ev.PartyID,
			Description: fmt.Sprintf("Cash purchase from %s", ev.PartyName),
			Payment:     ev.Total,
			RefType:     stockdomain.RefPurchase,
			RefID:       &ev.PurchaseID,
			RefNumber:   ev.PurchaseNumber,
		}).Error
	default:
		return tx.WithContext(ctx).Create(&acctdomain.BankTransaction{
			ID:          c.genID.Generate(),
			Date:        ev.Date,
			Type:        acctdomain.BankWithdrawal,
			PartyID:     &ev.PartyID,
			Description: fmt.Sprintf("Bank purchase from %s", ev.PartyName),
			Withdrawal:  ev.Total,
			RefType:     stockdomain.RefPurchase,
			RefID:       &ev.PurchaseID,
			RefNumber:   ev.PurchaseNumber,
		}).Error
	}
}

// PostPurchaseReversal takes the stock back out and, for credit
// purchases, debits the supplier back to settled.
func (c *Composer) PostPurchaseReversal(ctx context.Context, tx *gorm.DB, ev acctdomain.PurchaseEvent) error {
	for _, line := range ev.Lines {
		if _, err := c.stock.DeductStockTx(ctx, tx, stockdomain.MovementInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			RefType:   stockdomain.RefPurchaseCancel,
			RefID:     &ev.PurchaseID,
			RefNumber: ev.PurchaseNumber,
			Note:      fmt.Sprintf("Purchase cancellation: %s", ev.PurchaseNumber),
		}); err != nil {
			return err
		}
	}

	if ev.Mode != acctdomain.ModeCredit {
		return nil
	}
	_, err := c.parties.Post(ctx, tx, partydomain.PostInput{
		PartyID:   ev.PartyID,
		Date:      ev.Date,
		Type:      partydomain.TxnPurchaseReversal,
		Debit:     ev.Total,
		RefType:   stockdomain.RefPurchase,
		RefID:     &ev.PurchaseID,
		RefNumber: ev.PurchaseNumber,
		Note:      fmt.Sprintf("Purchase Cancelled: %s", ev.PurchaseNumber),
	})
	return err
}

// PostReceipt records money received from a customer: a party credit
// plus a cash receipt or bank deposit.
func (c *Composer) PostReceipt(ctx context.Context, tx *gorm.DB, ev acctdomain.MoneyEvent) error {
	if err := validateMoneyEvent(ev); err != nil {
		return err
	}

	narration := ev.Note
	if narration == "" {
		narration = fmt.Sprintf("Payment received via %s", ev.Mode)
	}
	if _, err := c.parties.Post(ctx, tx, partydomain.PostInput{
		PartyID:   ev.PartyID,
		Date:      ev.Date,
		Type:      partydomain.TxnReceipt,
		Credit:    ev.Amount,
		RefType:   partydomain.TxnReceipt,
		RefNumber: ev.Reference,
		Note:      narration,
	}); err != nil {
		return err
	}

	if ev.Mode == acctdomain.ModeCash {
		return tx.WithContext(ctx).Create(&acctdomain.CashTransaction{
			ID:          c.genID.Generate(),
			Date:        ev.Date,
			Type:        acctdomain.CashReceipt,
			PartyID:     &ev.PartyID,
			Description: fmt.Sprintf("Payment from %s", ev.PartyName),
			Receipt:     ev.Amount,
			RefNumber:   ev.Reference,
			Narration:   ev.Note,
		}).Error
	}
	return tx.WithContext(ctx).Create(&acctdomain.BankTransaction{
		ID:           c.genID.Generate(),
		Date:         ev.Date,
		Type:         acctdomain.BankDeposit,
		PartyID:      &ev.PartyID,
		Description:  fmt.Sprintf("Payment from %s", ev.PartyName),
		Deposit:      ev.Amount,
		ChequeNumber: ev.Reference,
		Narration:    ev.Note,
	}).Error
}

// PostPayment records money paid to a supplier: a party debit plus a
// cash payment or bank withdrawal.
func (c *Composer) PostPayment(ctx context.Context, tx *gorm.DB, ev acctdomain.MoneyEvent) error {
	if err := validateMoneyEvent(ev); err != nil {
		return err
	}

	narration := ev.Note
	if narration == "" {
		narration = fmt.Sprintf("Payment made via %s", ev.Mode)
	}
	if _, err := c.parties.Post(ctx, tx, partydomain.PostInput{
		PartyID:   ev.PartyID,
		Date:      ev.Date,
		Type:      partydomain.TxnPayment,
		Debit:     ev.Amount,
		RefType:   partydomain.TxnPayment,
		RefNumber: ev.Reference,
		Note:      narration,
	}); err != nil {
		return err
	}

	if ev.Mode == acctdomain.ModeCash {
		return tx.WithContext(ctx).Create(&acctdomain.CashTransaction{
			ID:          c.genID.Generate(),
			Date:        ev.Date,
			Type:        acctdomain.CashPayment,
			PartyID:     &ev.PartyID,
			Description: fmt.Sprintf("Payment to %s", ev.PartyName),
			Payment:     ev.Amount,
			RefNumber:   ev.Reference,
			Narration:   ev.Note,
		}).Error
	}
	return tx.WithContext(ctx).Create(&acctdomain.BankTransaction{
		ID:           c.genID.Generate(),
		Date:         ev.Date,
		Type:         acctdomain.BankWithdrawal,
		PartyID:      &ev.PartyID,
		Description:  fmt.Sprintf("Payment to %s", ev.PartyName),
		Withdrawal:   ev.Amount,
		ChequeNumber: ev.Reference,
		Narration:    ev.Note,
	}).Error
}

// PostExpense writes the cash or bank leg for an already-persisted
// expense row.
func (c *Composer) PostExpense(ctx context.Context, tx *gorm.DB, expense *acctdomain.Expense) error {
	if expense.PaymentMode == acctdomain.ModeCredit {
		return acctdomain.ErrCreditNotAllowed
	}

	if expense.PaymentMode == acctdomain.ModeCash {
		return tx.WithContext(ctx).Create(&acctdomain.CashTransaction{
			ID:          c.genID.Generate(),
			Date:        expense.ExpenseDate,
			Type:        acctdomain.CashPayment,
			Description: expense.Description,
			Payment:     expense.Amount,
			RefType:     acctdomain.AccountExpense,
			RefID:       &expense.ID,
			Narration:   fmt.Sprintf("Expense: %s", expense.Description),
		}).Error
	}
	return tx.WithContext(ctx).Create(&acctdomain.BankTransaction{
		ID:          c.genID.Generate(),
		Date:        expense.ExpenseDate,
		Type:        acctdomain.BankWithdrawal,
		Description: expense.Description,
		Withdrawal:  expense.Amount,
		RefType:     acctdomain.AccountExpense,
		RefID:       &expense.ID,
		Narration:   fmt.Sprintf("Expense: %s", expense.Description),
	}).Error
}

// PostSalaryPayment books a salary payout as an expense plus the cash
// or bank leg.
func (c *Composer) PostSalaryPayment(ctx context.Context, tx *gorm.DB, ev acctdomain.SalaryEvent) error {
	if ev.Mode == acctdomain.ModeCredit {
		return acctdomain.ErrCreditNotAllowed
	}
	if !ev.NetSalary.IsPositive() {
		return acctdomain.ErrInvalidAmount
	}

	expense := acctdomain.Expense{
		ID:          c.genID.Generate(),
		ExpenseDate: ev.Date,
		Description: fmt.Sprintf("Salary - %s (%s)", ev.EmployeeName, ev.Month),
		Amount:      ev.NetSalary,
		PaymentMode: ev.Mode,
		VendorName:  &ev.EmployeeName,
	}
	if err := tx.WithContext(ctx).Create(&expense).Error; err != nil {
		return err
	}

	if ev.Mode == acctdomain.ModeCash {
		return tx.WithContext(ctx).Create(&acctdomain.CashTransaction{
			ID:          c.genID.Generate(),
			Date:        ev.Date,
			Type:        acctdomain.CashPayment,
			Description: fmt.Sprintf("Salary payment - %s", ev.EmployeeName),
			Payment:     ev.NetSalary,
			RefType:     acctdomain.AccountSalary,
			RefID:       &ev.SlipID,
		}).Error
	}
	return tx.WithContext(ctx).Create(&acctdomain.BankTransaction{
		ID:          c.genID.Generate(),
		Date:        ev.Date,
		Type:        acctdomain.BankWithdrawal,
		Description: fmt.Sprintf("Salary payment - %s", ev.EmployeeName),
		Withdrawal:  ev.NetSalary,
		RefType:     acctdomain.AccountSalary,
		RefID:       &ev.SlipID,
	}).Error
}

func validateMoneyEvent(ev acctdomain.MoneyEvent) error {
	if !ev.Amount.IsPositive() {
		return acctdomain.ErrInvalidAmount
	}
	if ev.Mode == acctdomain.ModeCredit {
		return acctdomain.ErrCreditNotAllowed
	}
	if !ev.Mode.Valid() {
		return acctdomain.ErrInvalidPaymentMode
	}
	return nil
}
