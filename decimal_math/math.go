package decimal_math

import (
	"github.com/shopspring/decimal"
)

// Pow10 10^n, exact for any n.
func Pow10(n int) decimal.Decimal {
	return decimal.New(1, int32(n))
}
