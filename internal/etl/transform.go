package etl

import (
	"fmt"

	"github.com/dvloznov/billing-etl/internal/table"
)

// Columns the transformer reads and the one it derives.
const (
	ColBillingAmount = "billing_amount"
	ColTaxAmount     = "tax_amount"
	ColTotalCharges  = "total_charges"
)

// Transform normalizes a billing table with the default currency.
func Transform(t *table.Table) (*table.Table, error) {
	return TransformCurrency(t, DefaultCurrency)
}

// TransformCurrency applies the billing transformation:
//
//  1. rows that duplicate an earlier row (all columns equal) are dropped,
//     keeping the first occurrence and the remaining order;
//  2. billing_amount loses its leading currency symbol and must parse as a
//     decimal, as must tax_amount;
//  3. total_charges = billing_amount + tax_amount is appended as the last
//     column.
//
// An empty table passes through unchanged; the empty check deliberately
// precedes the required-column check, so an empty table missing columns is
// not an error. The input table is never mutated.
func TransformCurrency(t *table.Table, currency string) (*table.Table, error) {
	if t.IsEmpty() {
		return t.Clone(), nil
	}
	for _, col := range []string{ColBillingAmount, ColTaxAmount} {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("transform: %w: %q", ErrMissingColumn, col)
		}
	}

	out := table.New(t.Columns()...)
	seen := make(map[string]bool, t.Len())
	for i := 0; i < t.Len(); i++ {
		fp := t.Fingerprint(i)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		if err := out.AppendRow(t.Record(i)); err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
	}

	if err := out.AddColumn(ColTotalCharges); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	for i := 0; i < out.Len(); i++ {
		rawBilling, _ := out.Get(i, ColBillingAmount)
		billing, err := parseAmount(currency, rawBilling)
		if err != nil {
			return nil, fmt.Errorf("transform row %d, %s: %w", i+1, ColBillingAmount, err)
		}

		rawTax, _ := out.Get(i, ColTaxAmount)
		tax, err := parseAmount(currency, rawTax)
		if err != nil {
			return nil, fmt.Errorf("transform row %d, %s: %w", i+1, ColTaxAmount, err)
		}

		out.Set(i, ColBillingAmount, billing.String())
		out.Set(i, ColTotalCharges, billing.Add(tax).String())
	}

	return out, nil
}
