// Package money holds the integer minor-unit money type used for every
// amount that crosses a service boundary.
package money

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is an amount in minor currency units. There is no float constructor.
type Cents int64

// Zero is the additive identity.
const Zero Cents = 0

// FromMajor parses a major-unit string such as "15.00" or "7". Inputs with
// more than two fractional digits are rejected instead of being rounded.
func FromMajor(s string) (Cents, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	scaled := d.Shift(2)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("money: amount %q has fractional cents", s)
	}
	return Cents(scaled.IntPart()), nil
}

func (c Cents) Int64() int64 { return int64(c) }

func (c Cents) Add(other Cents) Cents { return c + other }

func (c Cents) Sub(other Cents) Cents { return c - other }

func (c Cents) Neg() Cents { return -c }

func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

func (c Cents) IsZero() bool     { return c == 0 }
func (c Cents) IsPositive() bool { return c > 0 }
func (c Cents) IsNegative() bool { return c < 0 }

// Clamp bounds c to [lo, hi].
func (c Cents) Clamp(lo, hi Cents) Cents {
	if c < lo {
		return lo
	}
	if c > hi {
		return hi
	}
	return c
}

// Decimal returns the value in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String renders major units with two decimals, e.g. "15.00".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Sum adds all values.
func Sum(values ...Cents) Cents {
	var total Cents
	for _, v := range values {
		total += v
	}
	return total
}

// UnmarshalJSON accepts integer JSON numbers only; 10.5 or "10" fail.
func (c *Cents) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return fmt.Errorf("money: cents must be an integer number")
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("money: cents must be an integer number")
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("money: cents must be an integer number, got %s", n.String())
	}
	*c = Cents(v)
	return nil
}
