package payrun

import "github.com/shopspring/decimal"

// AmountDigits is the fixed number of fractional digits carried by every
// Amount. All ingested values are rounded to this precision, so repeated
// additions and subtractions stay exact.
const AmountDigits = 4

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt32(int32(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Amount is a scalar monetary value with four fractional digits.
//
// Amounts are unitless: the engine never converts between currencies, it only
// adds and subtracts values from the same input stream.
type Amount struct {
	value decimal.Decimal
}

// A creates an Amount from any numeric value, rounded to four digits.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value).Round(AmountDigits)}
}

// ParseAmount parses the decimal text representation of an amount,
// rounded to four digits.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: d.Round(AmountDigits)}, nil
}

// String returns the decimal text representation, with up to four
// fractional digits and no trailing zeros.
func (a Amount) String() string { return a.value.String() }

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) Equal(b Amount) bool              { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool                     { return a.value.IsZero() }
func (a Amount) IsPositive() bool                 { return a.value.IsPositive() }
func (a Amount) IsNegative() bool                 { return a.value.IsNegative() }
func (a Amount) LessThan(b Amount) bool           { return a.value.LessThan(b.value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.value.GreaterThanOrEqual(b.value) }
func (a Amount) Neg() Amount                      { return Amount{value: a.value.Neg()} }

// binary operators.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value)} }
