// Package bmath holds the weighted-pool invariant math used when exiting a pool.
//
// All quantities are bnum.Num in base units. Functions are pure: undefined
// results (empty pool, zero weight, redeeming more than the supply) come back
// as NaN, never as a panic.
package bmath

import (
	"github.com/krazyTry/balancer-go/bnum"
	dmath "github.com/krazyTry/balancer-go/decimal_math"
)

var (
	one = bnum.One

	// Bone is the protocol's 18-decimal fixed-point one.
	Bone = bnum.NewFromDecimal(dmath.Pow10(int(PoolShareDecimals)))

	// MaxOutRatio caps a single-asset exit at a third of the token reserve.
	MaxOutRatio = bnum.One.Div(bnum.NewFromInt(3))
)

// PoolShareDecimals is the decimals of the pool-share token.
const PoolShareDecimals int32 = 18

// CalcNormalizedWeight tokenWeight / totalWeight
func CalcNormalizedWeight(tokenWeight, totalWeight bnum.Num) bnum.Num {
	return tokenWeight.Div(totalWeight)
}

// CalcSingleOutGivenPoolIn tokenAmountOut for redeeming poolAmountIn shares as a single token
//
//	normalizedWeight = tokenWeightOut / totalWeight
//	poolRatio        = (poolSupply - poolAmountIn) / poolSupply
//	tokenOutRatio    = poolRatio ^ (1 / normalizedWeight)
//	before           = tokenBalanceOut * (1 - tokenOutRatio)
//	tokenAmountOut   = before - before * (1 - normalizedWeight) * swapFee
func CalcSingleOutGivenPoolIn(
	tokenBalanceOut bnum.Num,
	tokenWeightOut bnum.Num,
	poolSupply bnum.Num,
	totalWeight bnum.Num,
	poolAmountIn bnum.Num,
	swapFee bnum.Num,
) bnum.Num {
	if poolSupply.IsZero() || totalWeight.IsZero() || tokenWeightOut.IsZero() {
		return bnum.NaN
	}
	if poolAmountIn.IsNegative() || poolAmountIn.GreaterThan(poolSupply) {
		return bnum.NaN
	}

	normalizedWeight := CalcNormalizedWeight(tokenWeightOut, totalWeight)

	newPoolSupply := poolSupply.Sub(poolAmountIn)
	poolRatio := newPoolSupply.Div(poolSupply)

	// the token holds the whole pool: exit is plain proportional math and no fee applies
	if tokenWeightOut.Equal(totalWeight) {
		return tokenBalanceOut.Mul(one.Sub(poolRatio))
	}

	var tokenOutRatio bnum.Num
	if poolRatio.IsZero() {
		tokenOutRatio = bnum.Zero
	} else {
		// 1 / normalizedWeight, taken as totalWeight / tokenWeightOut to stay exact
		tokenOutRatio = poolRatio.Pow(totalWeight.Div(tokenWeightOut))
	}

	tokenAmountOutBeforeFee := tokenBalanceOut.Mul(one.Sub(tokenOutRatio))

	// fee is charged on the part of the exit that is not proportional
	feeRate := one.Sub(normalizedWeight).Mul(swapFee)
	fee := tokenAmountOutBeforeFee.Mul(feeRate)

	return tokenAmountOutBeforeFee.Sub(fee)
}

// CalcNaiveSingleOut the proportional estimate of a single-asset exit, ignoring curve and fee
//
//	poolAmountIn * totalWeight * tokenBalanceOut / poolSupply / tokenWeightOut
func CalcNaiveSingleOut(
	poolAmountIn bnum.Num,
	totalWeight bnum.Num,
	tokenBalanceOut bnum.Num,
	poolSupply bnum.Num,
	tokenWeightOut bnum.Num,
) bnum.Num {
	return poolAmountIn.
		Mul(totalWeight).
		Mul(tokenBalanceOut).
		Div(poolSupply).
		Div(tokenWeightOut)
}

// CalcTokensOutGivenPoolIn proportional multi-asset exit: balance * poolAmountIn / poolSupply for each token
func CalcTokensOutGivenPoolIn(balances []bnum.Num, poolSupply, poolAmountIn bnum.Num) []bnum.Num {
	ratio := poolAmountIn.Div(poolSupply)
	out := make([]bnum.Num, len(balances))
	for i, balance := range balances {
		out[i] = balance.Mul(ratio)
	}
	return out
}
