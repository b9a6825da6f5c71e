package balancer

import (
	"github.com/krazyTry/balancer-go/erc20"
	"github.com/krazyTry/balancer-go/snapshot"
	"github.com/krazyTry/balancer-go/withdraw"
)

// NewCalculator creates a withdrawal quote calculator.
//
// Example:
//
// calc := NewCalculator(withdraw.CalculatorConfig{MaxOutRatio: bmath.MaxOutRatio})
//
// calc.Quote(pool, account, withdraw.WithdrawalRequest{DepositType: withdraw.SingleAsset, TokenOut: weth, Share: "0.5"}, balances)
var NewCalculator = withdraw.NewCalculator

// LoadPools reads a subgraph pool snapshot into a registry.
//
// Example:
//
// pools, _ := LoadPools("pools.json")
//
// pool, ok := pools.Get("0x165a50bc092f6870dc111c349bae5fc35147ac86")
var LoadPools = snapshot.LoadRegistry

// NewBalanceReader reads pool-token supply and holdings from chain.
//
// Example:
//
// client, _ := erc20.Dial(ctx, rpcURL)
//
// balances, _ := NewBalanceReader(client, logger.GetForComponent("erc20")).LoadBalances(ctx, pool.Address, account)
var NewBalanceReader = erc20.NewReader
