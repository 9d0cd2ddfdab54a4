package domain

import (
	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/tax"
	"github.com/shopspring/decimal"
)

// ApplyLineTax fills the per-type rates and amounts of an item from
// its taxable amount and GST rate. The document's IGST flag decides
// whether the rate is carried whole or split.
func (it *InvoiceItem) ApplyLineTax(isIGST bool) {
	breakdown := tax.CalculateItemTax(it.TaxableAmount, it.GSTPercent, isIGST)
	it.CGSTPercent = breakdown.CGSTPercent
	it.CGSTAmount = breakdown.CGSTAmount
	it.SGSTPercent = breakdown.SGSTPercent
	it.SGSTAmount = breakdown.SGSTAmount
	it.IGSTPercent = breakdown.IGSTPercent
	it.IGSTAmount = breakdown.IGSTAmount
	it.TotalAmount = breakdown.TotalAmount
}

func (it *PurchaseItem) ApplyLineTax(isIGST bool) {
	breakdown := tax.CalculateItemTax(it.TaxableAmount, it.GSTPercent, isIGST)
	it.CGSTPercent = breakdown.CGSTPercent
	it.CGSTAmount = breakdown.CGSTAmount
	it.SGSTPercent = breakdown.SGSTPercent
	it.SGSTAmount = breakdown.SGSTAmount
	it.IGSTPercent = breakdown.IGSTPercent
	it.IGSTAmount = breakdown.IGSTAmount
	it.TotalAmount = breakdown.TotalAmount
}

// ComputeTotals derives every aggregate field from the items: subtotal
// and per-type tax sums, the grand total after document discount, the
// whole-rupee round-off, and the payment status. CREDIT documents open
// unpaid for the full total; any other mode settles immediately.
func (inv *Invoice) ComputeTotals() {
	subtotal, cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.TaxableAmount)
		cgst = cgst.Add(item.CGSTAmount)
		sgst = sgst.Add(item.SGSTAmount)
		igst = igst.Add(item.IGSTAmount)
	}

	inv.Subtotal = subtotal
	inv.CGSTAmount = cgst
	inv.SGSTAmount = sgst
	inv.IGSTAmount = igst
	inv.TaxAmount = cgst.Add(sgst).Add(igst)

	total := subtotal.Add(inv.TaxAmount).Sub(inv.DiscountAmount)
	rounded, adjustment := tax.RoundOff(total, 1)
	inv.RoundOff = adjustment
	inv.TotalAmount = rounded

	if inv.PaymentMode == acctdomain.ModeCredit {
		inv.PaymentStatus = StatusUnpaid
		inv.AmountPaid = decimal.Zero
		inv.AmountDue = inv.TotalAmount
	} else {
		inv.PaymentStatus = StatusPaid
		inv.AmountPaid = inv.TotalAmount
		inv.AmountDue = decimal.Zero
	}
}

func (p *Purchase) ComputeTotals() {
	subtotal, cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range p.Items {
		subtotal = subtotal.Add(item.TaxableAmount)
		cgst = cgst.Add(item.CGSTAmount)
		sgst = sgst.Add(item.SGSTAmount)
		igst = igst.Add(item.IGSTAmount)
	}

	p.Subtotal = subtotal
	p.CGSTAmount = cgst
	p.SGSTAmount = sgst
	p.IGSTAmount = igst
	p.TaxAmount = cgst.Add(sgst).Add(igst)

	total := subtotal.Add(p.TaxAmount).Sub(p.DiscountAmount)
	rounded, adjustment := tax.RoundOff(total, 1)
	p.RoundOff = adjustment
	p.TotalAmount = rounded

	if p.PaymentMode == acctdomain.ModeCredit {
		p.PaymentStatus = StatusUnpaid
		p.AmountPaid = decimal.Zero
		p.AmountDue = p.TotalAmount
	} else {
		p.PaymentStatus = StatusPaid
		p.AmountPaid = p.TotalAmount
		p.AmountDue = decimal.Zero
	}
}
