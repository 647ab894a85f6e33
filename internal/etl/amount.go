package etl

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO code used when no currency is configured.
// Billing exports prefix amounts with the currency grapheme, e.g. "$100".
const DefaultCurrency = "USD"

// parseAmount strips the leading grapheme of the given ISO currency from raw
// and parses the remainder as an exact decimal. A bare numeric value with no
// symbol is accepted as-is.
func parseAmount(code, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if cur := money.GetCurrency(code); cur != nil {
		s = strings.TrimSpace(strings.TrimPrefix(s, cur.Grapheme))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: cannot parse %q as a number", ErrValueConversion, raw)
	}
	return d, nil
}
