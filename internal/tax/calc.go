// Package tax implements GST computation: CGST/SGST/IGST splits,
// tax-inclusive decomposition and round-off. All arithmetic is decimal;
// monetary results are rounded half-up to two places.
package tax

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// ItemTax is the tax breakdown for one taxable amount.
type ItemTax struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGSTPercent   decimal.Decimal `json:"cgst_percent"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTPercent   decimal.Decimal `json:"sgst_percent"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTPercent   decimal.Decimal `json:"igst_percent"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// InclusiveTax is the reverse decomposition of a tax-inclusive amount.
type InclusiveTax struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// IsInterstate reports whether a transaction crosses state lines.
// Unknown state on either side defaults to intrastate.
func IsInterstate(sellerStateCode, buyerStateCode string) bool {
	if sellerStateCode == "" || buyerStateCode == "" {
		return false
	}
	return sellerStateCode != buyerStateCode
}

// StateCodeFromGSTIN extracts the two-digit state code from a GSTIN.
// Returns "" when the GSTIN is too short to carry one.
func StateCodeFromGSTIN(gstin string) string {
	if len(gstin) >= 2 {
		return gstin[:2]
	}
	return ""
}

// CalculateItemTax computes the tax breakdown for an amount at the
// given GST rate. Interstate transactions carry the whole rate as
// IGST; intrastate transactions split it into CGST and SGST, each
// rounded independently, so the halves may differ by one paisa.
func CalculateItemTax(amount, gstPercent decimal.Decimal, isIGST bool) ItemTax {
	result := ItemTax{
		TaxableAmount: amount,
		TotalAmount:   amount,
	}

	if gstPercent.LessThanOrEqual(decimal.Zero) {
		return result
	}

	if isIGST {
		igst := amount.Mul(gstPercent).Div(oneHundred).Round(2)
		result.IGSTPercent = gstPercent
		result.IGSTAmount = igst
		result.TotalTax = igst
	} else {
		halfRate := gstPercent.Div(decimal.NewFromInt(2))
		cgst := amount.Mul(halfRate).Div(oneHundred).Round(2)
		sgst := amount.Mul(halfRate).Div(oneHundred).Round(2)

		result.CGSTPercent = halfRate
		result.CGSTAmount = cgst
		result.SGSTPercent = halfRate
		result.SGSTAmount = sgst
		result.TotalTax = cgst.Add(sgst)
	}

	result.TotalAmount = amount.Add(result.TotalTax)
	return result
}

// CalculateTaxInclusive derives the taxable base from a tax-inclusive
// amount: taxable = amount * 100 / (100 + rate).
func CalculateTaxInclusive(amountWithTax, gstPercent decimal.Decimal) InclusiveTax {
	if gstPercent.LessThanOrEqual(decimal.Zero) {
		return InclusiveTax{
			TaxableAmount: amountWithTax,
			TotalAmount:   amountWithTax,
		}
	}

	taxable := amountWithTax.Mul(oneHundred).Div(oneHundred.Add(gstPercent)).Round(2)
	return InclusiveTax{
		TaxableAmount: taxable,
		TaxAmount:     amountWithTax.Sub(taxable),
		TotalAmount:   amountWithTax,
	}
}

// RoundOff rounds an amount to the nearest multiple of roundTo and
// returns the rounded amount with the signed adjustment applied.
func RoundOff(amount decimal.Decimal, roundTo int64) (decimal.Decimal, decimal.Decimal) {
	if roundTo <= 0 {
		roundTo = 1
	}
	denom := decimal.NewFromInt(roundTo)
	rounded := amount.Div(denom).Round(0).Mul(denom)
	return rounded, rounded.Sub(amount)
}
