// Package withdraw answers, for a weighted pool and a requested withdrawal,
// what the account owns before and after, whether the request is acceptable,
// and how much slippage a single-asset exit incurs.
//
// Everything here is a pure function of its arguments: nothing is cached and
// the same inputs always give the same output, so callers simply re-evaluate
// on every input change.
package withdraw

import (
	"github.com/krazyTry/balancer-go/bnum"
)

// UserTokenAmount pool tokens redeemed: userBalance * share
func UserTokenAmount(userBalance, share bnum.Num) bnum.Num {
	return userBalance.Mul(share)
}

// ShareProportion userBalance / totalSupply, 0 for an empty pool
func ShareProportion(userBalance, totalSupply bnum.Num) bnum.Num {
	if totalSupply.IsZero() {
		return bnum.Zero
	}
	return userBalance.Div(totalSupply)
}

// ComputeUserShare returns the account's pool share now and after redeeming
// share of its pool tokens.
//
// Current is undefined without an account or a known supply. Future is
// defined whenever the pool and its supply are known; with invalid input the
// removed amount is taken as zero so Future re-derives Current. A fully
// drained pool gives a Future of 0.
func ComputeUserShare(pool *Pool, account string, hasValidInput bool, share bnum.Num, balances Balances) UserShare {
	var us UserShare
	if pool == nil || balances == nil {
		return us
	}

	currentTotal, hasTotal := balances.TotalSupply(pool.Address)
	balance := userBalance(balances, pool.Address, account)

	if account != "" && hasTotal {
		us.Current = bnum.NewNullNum(ShareProportion(balance, currentTotal))
	}

	if !hasTotal {
		return us
	}

	removed := bnum.Zero
	if hasValidInput {
		removed = UserTokenAmount(balance, share)
	}

	futureTotal := currentTotal.Sub(removed)
	if futureTotal.IsZero() {
		us.Future = bnum.NewNullNum(bnum.Zero)
	} else {
		us.Future = bnum.NewNullNum(balance.Sub(removed).Div(futureTotal))
	}
	return us
}
