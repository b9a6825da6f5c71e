package decimal_math

import (
	"github.com/shopspring/decimal"
)

// DefaultScale is the number of fractional digits the series helpers keep.
const DefaultScale int32 = 40

// guardDigits are carried past the requested scale inside the series loops.
const guardDigits int32 = 10

var (
	one   = decimal.NewFromInt(1)
	two   = decimal.NewFromInt(2)
	half  = decimal.New(5, -1)
	three = decimal.NewFromInt(3)
)

// Pow base^exponent
//
// The integer part of the exponent is applied by binary exponentiation, the
// fractional part as exp(frac * ln(base)). The result is rounded to scale.
func Pow(base, exponent decimal.Decimal, scale int32) decimal.Decimal {
	if exponent.IsZero() {
		return one
	}

	if base.IsZero() {
		if exponent.IsNegative() {
			panic("0 raised to a negative power")
		}
		return decimal.Zero
	}

	intPart := exponent.Truncate(0)
	frac := exponent.Sub(intPart)

	if base.IsNegative() && !frac.IsZero() {
		panic("negative base with non-integer exponent")
	}

	result := PowInt(base, intPart.IntPart(), scale+guardDigits)
	if !frac.IsZero() {
		lnBase := Ln(base, scale+guardDigits)
		result = result.Mul(Exp(lnBase.Mul(frac), scale+guardDigits))
	}
	return result.Round(scale)
}

// PowInt base^n for an integer n, keeping scale fractional digits between steps.
func PowInt(base decimal.Decimal, n int64, scale int32) decimal.Decimal {
	if n == 0 {
		return one
	}
	if n < 0 {
		return one.DivRound(PowInt(base, -n, scale+guardDigits), scale)
	}

	result := one
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b).Round(scale)
		}
		n >>= 1
		if n > 0 {
			b = b.Mul(b).Round(scale)
		}
	}
	return result
}

// Ln natural logarithm
//
// x is first brought into [0.5, 1] by exact halvings/doublings, then
// ln(x) = 2 * atanh((x-1)/(x+1)) + k*ln(2).
func Ln(x decimal.Decimal, scale int32) decimal.Decimal {
	if x.Sign() <= 0 {
		panic("ln undefined for <= 0")
	}
	if x.Equal(one) {
		return decimal.Zero
	}

	work := scale + guardDigits

	var k int64
	for x.GreaterThan(one) {
		x = x.Mul(half)
		k++
	}
	for x.LessThan(half) {
		x = x.Mul(two)
		k--
	}

	z := x.Sub(one).DivRound(x.Add(one), work)
	result := atanh2(z, work)

	if k != 0 {
		// ln(2) = 2 * atanh(1/3)
		ln2 := atanh2(one.DivRound(three, work), work)
		result = result.Add(ln2.Mul(decimal.NewFromInt(k)))
	}
	return result.Round(scale)
}

// atanh2 2*atanh(z) for |z| <= 1/3
func atanh2(z decimal.Decimal, scale int32) decimal.Decimal {
	epsilon := decimal.New(1, -scale)
	z2 := z.Mul(z).Round(scale)

	sum := z
	power := z
	for i := int64(3); i < 2000; i += 2 {
		power = power.Mul(z2).Round(scale)
		term := power.DivRound(decimal.NewFromInt(i), scale)
		if term.Abs().LessThan(epsilon) {
			break
		}
		sum = sum.Add(term)
	}
	return sum.Mul(two)
}

// Exp e^x
//
// x is halved until |x| <= 0.5, the Taylor series is summed, then the result
// is squared back up.
func Exp(x decimal.Decimal, scale int32) decimal.Decimal {
	if x.IsZero() {
		return one
	}

	work := scale + guardDigits
	epsilon := decimal.New(1, -work)

	r := x
	halvings := 0
	for r.Abs().GreaterThan(half) {
		r = r.Mul(half)
		halvings++
	}

	sum := one
	term := one
	for i := int64(1); i < 2000; i++ {
		term = term.Mul(r).DivRound(decimal.NewFromInt(i), work)
		if term.Abs().LessThan(epsilon) {
			break
		}
		sum = sum.Add(term)
	}

	for ; halvings > 0; halvings-- {
		sum = sum.Mul(sum).Round(work)
	}
	return sum.Round(scale)
}
