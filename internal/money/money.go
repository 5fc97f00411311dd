package money

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount cannot be parsed as a decimal.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// Money is an exact decimal amount. The zero value is 0.00. Arithmetic
// never goes through binary floats and equality is exact.
type Money struct {
	d decimal.Decimal
}

// New parses a decimal string ("1050", "1050.00", "-12.5") into Money.
func New(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{d: d}, nil
}

// MustNew is New for compile-time constants in tests and defaults.
// It panics on malformed input.
func MustNew(s string) Money {
	m, err := New(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal wraps an already-validated decimal.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// Zero returns 0.00.
func Zero() Money {
	return Money{}
}

func (m Money) Add(o Money) Money      { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money      { return Money{d: m.d.Sub(o.d)} }
func (m Money) Neg() Money             { return Money{d: m.d.Neg()} }
func (m Money) Equal(o Money) bool     { return m.d.Equal(o.d) }
func (m Money) Cmp(o Money) int        { return m.d.Cmp(o.d) }
func (m Money) IsZero() bool           { return m.d.IsZero() }
func (m Money) IsNegative() bool       { return m.d.IsNegative() }
func (m Money) Decimal() decimal.Decimal { return m.d }

// Mul scales the amount by an exact decimal factor (e.g. a percentage / 100).
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{d: m.d.Mul(factor)}
}

// DivRound divides by an integer divisor and rounds half away from zero to
// two decimal places.
func (m Money) DivRound(divisor int64) Money {
	return Money{d: m.d.Div(decimal.NewFromInt(divisor)).Round(2)}
}

// Round returns the amount rounded half away from zero to two decimal places.
func (m Money) Round() Money {
	return Money{d: m.d.Round(2)}
}

// String renders with two decimal places, the form stored and displayed
// everywhere in the application.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON encodes as an unquoted numeric decimal.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := New(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scan implements sql.Scanner. Amount columns are NUMERIC selected as text.
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := New(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		return m.Scan(string(v))
	case nil:
		*m = Zero()
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidAmount, src)
	}
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.d.StringFixed(2), nil
}
