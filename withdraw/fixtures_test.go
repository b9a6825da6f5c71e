package withdraw

import (
	"github.com/krazyTry/balancer-go/bnum"
)

const (
	poolAddr = "0x165a50bc092f6870dc111c349bae5fc35147ac86"
	tokenA   = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	tokenB   = "0x6b175474e89094c44da98b954eedeac495271d0f"
	stranger = "0x1f9840a85d5af5e3b1d1861b8b8e1a6ff1c5d9b1"
	alice    = "0x00000000000000000000000000000000000a11ce"
)

func n(s string) bnum.Num {
	return bnum.MustNew(s)
}

// wei converts whole units to 18-decimal base units.
func wei(s string) bnum.Num {
	return n(s).Shift(18)
}

// equalWeightPool: two tokens of weight 1, 1000 of each, 100 shares, 0.3% fee.
func equalWeightPool() *Pool {
	return &Pool{
		Address: poolAddr,
		Tokens: []Token{
			{Address: tokenA, Symbol: "WETH", Balance: n("1000"), Decimals: 18, DenormWeight: n("1")},
			{Address: tokenB, Symbol: "DAI", Balance: n("1000"), Decimals: 18, DenormWeight: n("1")},
		},
		TotalShares: n("100"),
		TotalWeight: n("2"),
		SwapFee:     n("0.003"),
	}
}

// balancesOf reports a pool supply matching the snapshot and the given account holding.
func balancesOf(account, holding string) *StaticBalances {
	b := NewStaticBalances().SetTotalSupply(poolAddr, wei("100"))
	if account != "" {
		b.SetBalance(poolAddr, account, wei(holding))
	}
	return b
}
