package renderer

import (
	"github.com/Rhymond/go-money"

	"github.com/payrun/payrun"
)

// FormatAmount formats a balance for display. With an empty currency it
// returns the raw decimal text; otherwise the value is shifted to the
// currency's minor unit and formatted with its locale conventions.
func FormatAmount(a payrun.Amount, currency string) string {
	if currency == "" {
		return a.String()
	}
	// the Money constructor guarantees a non-nil currency even for unknown codes.
	cur := money.New(0, currency).Currency()
	minor := a.Decimal().Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
