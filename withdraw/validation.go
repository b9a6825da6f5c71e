package withdraw

import (
	"strings"

	"github.com/krazyTry/balancer-go/bmath"
	"github.com/krazyTry/balancer-go/bnum"
)

// ValidationStatus classifies the raw withdrawal input. Exactly one applies.
type ValidationStatus int

const (
	StatusValid ValidationStatus = iota
	StatusEmpty
	StatusZero
	StatusNotFloat
	StatusNegative
	StatusInsufficientBalance
	StatusInsufficientLiquidity
)

var statusNames = map[ValidationStatus]string{
	StatusValid:                 "valid",
	StatusEmpty:                 "empty",
	StatusZero:                  "zero",
	StatusNotFloat:              "not-a-number",
	StatusNegative:              "negative",
	StatusInsufficientBalance:   "insufficient-balance",
	StatusInsufficientLiquidity: "insufficient-liquidity",
}

// user-facing texts; the trailing space on the empty message is intentional
var statusMessages = map[ValidationStatus]string{
	StatusEmpty:                 "Values can't be empty ",
	StatusZero:                  "Values can't be zero",
	StatusNotFloat:              "Values should be numbers",
	StatusNegative:              "Values should be positive numbers",
	StatusInsufficientBalance:   "Insufficient balance",
	StatusInsufficientLiquidity: "Insufficient liquidity",
}

func (s ValidationStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Message is the text shown for a rejected input, "" for StatusValid.
func (s ValidationStatus) Message() string {
	return statusMessages[s]
}

func (s ValidationStatus) IsValid() bool {
	return s == StatusValid
}

func (s ValidationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ValidationContext is what the validator needs besides the input itself.
type ValidationContext struct {
	// Balance is the account's pool-token balance in base units.
	Balance     bnum.Num
	DepositType DepositType
	// Pool and TokenOut are only read for single-asset exits.
	Pool     *Pool
	TokenOut string
	// MaxOutRatio is the share of the token reserve a single exit may take.
	// The zero value means the whole reserve.
	MaxOutRatio bnum.Num
}

type validationRule struct {
	status  ValidationStatus
	matches func() bool
}

// ValidateWithdrawal classifies input against ctx. Rules are tried in order and
// the first match wins:
//
//	empty, not-a-number, zero, negative, insufficient-balance, insufficient-liquidity
//
// and StatusValid when none match.
func ValidateWithdrawal(input string, ctx ValidationContext) ValidationStatus {
	trimmed := strings.TrimSpace(input)
	share, parseErr := bnum.Parse(trimmed)

	rules := []validationRule{
		{StatusEmpty, func() bool { return trimmed == "" }},
		{StatusNotFloat, func() bool { return parseErr != nil }},
		{StatusZero, share.IsZero},
		{StatusNegative, share.IsNegative},
		{StatusInsufficientBalance, func() bool { return exceedsBalance(share, ctx) }},
		{StatusInsufficientLiquidity, func() bool { return exceedsLiquidity(share, ctx) }},
	}

	for _, rule := range rules {
		if rule.matches() {
			return rule.status
		}
	}
	return StatusValid
}

func exceedsBalance(share bnum.Num, ctx ValidationContext) bool {
	if !ctx.Balance.IsPositive() {
		return true
	}
	return share.GreaterThan(bnum.One)
}

func exceedsLiquidity(share bnum.Num, ctx ValidationContext) bool {
	if ctx.DepositType != SingleAsset {
		return false
	}

	pool := ctx.Pool
	token := pool.MustToken(ctx.TokenOut)
	tokenBalance := token.DenormBalance()

	amountOut := bmath.CalcSingleOutGivenPoolIn(
		tokenBalance,
		token.DenormWeight,
		pool.DenormSupply(),
		pool.TotalWeight,
		UserTokenAmount(ctx.Balance, share),
		pool.SwapFee,
	)
	if amountOut.IsNaN() {
		return true
	}

	ratio := ctx.MaxOutRatio
	if ratio.IsZero() || ratio.IsNaN() {
		ratio = bnum.One
	}
	return amountOut.GreaterThan(tokenBalance.Mul(ratio))
}
