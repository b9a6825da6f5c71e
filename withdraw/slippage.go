package withdraw

import (
	"github.com/krazyTry/balancer-go/bmath"
	"github.com/krazyTry/balancer-go/bnum"
)

// SlippageThreshold is the slippage at which a single-asset exit gets a warning.
var SlippageThreshold = bnum.MustNew("0.01")

// SlippageInput carries the CalcSingleOutGivenPoolIn arguments, in base units,
// and the exit mode.
type SlippageInput struct {
	DepositType     DepositType
	TokenBalanceOut bnum.Num
	TokenWeightOut  bnum.Num
	PoolSupply      bnum.Num
	TotalWeight     bnum.Num
	PoolAmountIn    bnum.Num
	SwapFee         bnum.Num
}

// SlippageResult compares the curve payout with the proportional estimate.
// Slippage is 1 - AmountOut/NaiveAmountOut and NaN when that is undefined.
type SlippageResult struct {
	Slippage       bnum.Num `json:"slippage"`
	ShouldWarn     bool     `json:"shouldWarn"`
	AmountOut      bnum.Num `json:"amountOut"`
	NaiveAmountOut bnum.Num `json:"naiveAmountOut"`
}

// PoolSlippageInput builds a SlippageInput from a pool snapshot. For a
// single-asset exit tokenOut must be a pool member.
func PoolSlippageInput(pool *Pool, depositType DepositType, tokenOut string, poolAmountIn bnum.Num) SlippageInput {
	in := SlippageInput{
		DepositType:  depositType,
		PoolSupply:   pool.DenormSupply(),
		TotalWeight:  pool.TotalWeight,
		PoolAmountIn: poolAmountIn,
		SwapFee:      pool.SwapFee,
	}
	if depositType == SingleAsset {
		token := pool.MustToken(tokenOut)
		in.TokenBalanceOut = token.DenormBalance()
		in.TokenWeightOut = token.DenormWeight
	}
	return in
}

// EvaluateSlippage is EvaluateSlippageWithThreshold at SlippageThreshold.
func EvaluateSlippage(in SlippageInput) SlippageResult {
	return EvaluateSlippageWithThreshold(in, SlippageThreshold)
}

// EvaluateSlippageWithThreshold computes the slippage of the exit described by
// in. A multi-asset exit is proportional by construction: its slippage is
// reported as 0 and never warns. Otherwise a warning is due when slippage is
// defined and at least threshold.
func EvaluateSlippageWithThreshold(in SlippageInput, threshold bnum.Num) SlippageResult {
	if in.DepositType == MultiAsset {
		return SlippageResult{Slippage: bnum.Zero}
	}

	amountOut := bmath.CalcSingleOutGivenPoolIn(
		in.TokenBalanceOut,
		in.TokenWeightOut,
		in.PoolSupply,
		in.TotalWeight,
		in.PoolAmountIn,
		in.SwapFee,
	)
	naive := bmath.CalcNaiveSingleOut(
		in.PoolAmountIn,
		in.TotalWeight,
		in.TokenBalanceOut,
		in.PoolSupply,
		in.TokenWeightOut,
	)

	slippage := bnum.One.Sub(amountOut.Div(naive))

	return SlippageResult{
		Slippage:       slippage,
		ShouldWarn:     !slippage.IsNaN() && slippage.GreaterThanOrEqual(threshold),
		AmountOut:      amountOut,
		NaiveAmountOut: naive,
	}
}
