// Package bnum is the fixed-point number type used by all pool math.
//
// A Num is an arbitrary-precision base-10 value backed by shopspring/decimal,
// with one extra state: NaN. Division by zero and other undefined operations
// produce NaN instead of panicking, NaN propagates through arithmetic, and
// every ordered comparison against NaN is false.
package bnum

import (
	"errors"
	"math/big"
	"strings"

	dmath "github.com/krazyTry/balancer-go/decimal_math"
	"github.com/shopspring/decimal"
)

// DivisionPrecision is the number of fractional digits kept by Div and Pow.
const DivisionPrecision int32 = dmath.DefaultScale

// uint256 has 78 digits
const uint256Digits = 78

// Parse accepts exponents in [MinExponent, MaxExponent]. Rescaling a value
// outside that window costs time proportional to the exponent.
const (
	MaxExponent int32 = uint256Digits
	MinExponent int32 = -(DivisionPrecision + uint256Digits)
)

// ErrNotANumber is returned by Parse for input that is not a finite decimal
// or whose exponent is out of range.
var ErrNotANumber = errors.New("bnum: not a number")

type Num struct {
	d   decimal.Decimal
	nan bool
}

var (
	Zero = Num{}
	One  = NewFromInt(1)
	NaN  = Num{nan: true}
)

// New parses s, returning NaN when it is not a decimal number.
func New(s string) Num {
	n, err := Parse(s)
	if err != nil {
		return NaN
	}
	return n
}

// MustNew is like New but panics on malformed input. Use it for constants.
func MustNew(s string) Num {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Parse accepts plain and exponent notation ("12.5", "-3", "1e18").
func Parse(s string) (Num, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NaN, ErrNotANumber
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return NaN, ErrNotANumber
	}
	if exp := d.Exponent(); exp < MinExponent || exp > MaxExponent {
		return NaN, ErrNotANumber
	}
	return Num{d: d}, nil
}

func NewFromInt(i int64) Num {
	return Num{d: decimal.NewFromInt(i)}
}

func NewFromDecimal(d decimal.Decimal) Num {
	return Num{d: d}
}

// NewFromBigInt returns i * 10^exp.
func NewFromBigInt(i *big.Int, exp int32) Num {
	if i == nil {
		return NaN
	}
	return Num{d: decimal.NewFromBigInt(i, exp)}
}

func (n Num) IsNaN() bool {
	return n.nan
}

func (n Num) Decimal() decimal.Decimal {
	return n.d
}

func (n Num) Add(o Num) Num {
	if n.nan || o.nan {
		return NaN
	}
	return Num{d: n.d.Add(o.d)}
}

func (n Num) Sub(o Num) Num {
	if n.nan || o.nan {
		return NaN
	}
	return Num{d: n.d.Sub(o.d)}
}

func (n Num) Mul(o Num) Num {
	if n.nan || o.nan {
		return NaN
	}
	return Num{d: n.d.Mul(o.d)}
}

// Div n / o. Division by zero is NaN.
func (n Num) Div(o Num) Num {
	if n.nan || o.nan || o.d.IsZero() {
		return NaN
	}
	return Num{d: n.d.DivRound(o.d, DivisionPrecision)}
}

// Pow n^e. Undefined cases (negative base with a fractional exponent, zero
// to a negative power) are NaN.
func (n Num) Pow(e Num) Num {
	if n.nan || e.nan {
		return NaN
	}
	if n.d.IsNegative() && !e.IsInteger() {
		return NaN
	}
	if n.d.IsZero() && e.d.IsNegative() {
		return NaN
	}
	return Num{d: dmath.Pow(n.d, e.d, DivisionPrecision)}
}

func (n Num) Neg() Num {
	if n.nan {
		return NaN
	}
	return Num{d: n.d.Neg()}
}

func (n Num) Abs() Num {
	if n.nan {
		return NaN
	}
	return Num{d: n.d.Abs()}
}

// Shift multiplies by 10^places. Used to move between whole and base units.
func (n Num) Shift(places int32) Num {
	if n.nan {
		return NaN
	}
	return Num{d: n.d.Shift(places)}
}

// IntegerValue rounds to an integer, halves away from zero.
func (n Num) IntegerValue() Num {
	if n.nan {
		return NaN
	}
	return Num{d: n.d.Round(0)}
}

func (n Num) IsInteger() bool {
	return !n.nan && n.d.Equal(n.d.Truncate(0))
}

func (n Num) IsZero() bool {
	return !n.nan && n.d.IsZero()
}

func (n Num) IsNegative() bool {
	return !n.nan && n.d.IsNegative()
}

func (n Num) IsPositive() bool {
	return !n.nan && n.d.IsPositive()
}

// Sign -1, 0 or +1; NaN reports 0.
func (n Num) Sign() int {
	if n.nan {
		return 0
	}
	return n.d.Sign()
}

func (n Num) Equal(o Num) bool {
	return !n.nan && !o.nan && n.d.Equal(o.d)
}

func (n Num) LessThan(o Num) bool {
	return !n.nan && !o.nan && n.d.LessThan(o.d)
}

func (n Num) LessThanOrEqual(o Num) bool {
	return !n.nan && !o.nan && n.d.LessThanOrEqual(o.d)
}

func (n Num) GreaterThan(o Num) bool {
	return !n.nan && !o.nan && n.d.GreaterThan(o.d)
}

func (n Num) GreaterThanOrEqual(o Num) bool {
	return !n.nan && !o.nan && n.d.GreaterThanOrEqual(o.d)
}

func (n Num) String() string {
	if n.nan {
		return "NaN"
	}
	return n.d.String()
}

// ToFixed renders n rounded to places fractional digits.
func (n Num) ToFixed(places int32) string {
	if n.nan {
		return "NaN"
	}
	return n.d.StringFixed(places)
}

// FormatPercentage renders a fraction as a percentage, 0.0514 -> "5.14%".
func (n Num) FormatPercentage(places int32) string {
	if n.nan {
		return "NaN"
	}
	return n.d.Shift(2).StringFixed(places) + "%"
}
