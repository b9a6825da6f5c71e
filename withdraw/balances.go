package withdraw

import (
	"strings"

	"github.com/krazyTry/balancer-go/bnum"
)

// Balances answers pool-token supply and holdings, in base units.
// A false second return means the value is not known yet.
type Balances interface {
	TotalSupply(pool string) (bnum.Num, bool)
	Balance(pool, account string) (bnum.Num, bool)
}

// StaticBalances is an in-memory Balances. The zero value is empty and usable.
type StaticBalances struct {
	supply   map[string]bnum.Num
	holdings map[string]bnum.Num
}

func NewStaticBalances() *StaticBalances {
	return &StaticBalances{
		supply:   make(map[string]bnum.Num),
		holdings: make(map[string]bnum.Num),
	}
}

func holdingKey(pool, account string) string {
	return strings.ToLower(pool) + "/" + strings.ToLower(account)
}

func (s *StaticBalances) SetTotalSupply(pool string, supply bnum.Num) *StaticBalances {
	if s.supply == nil {
		s.supply = make(map[string]bnum.Num)
	}
	s.supply[strings.ToLower(pool)] = supply
	return s
}

func (s *StaticBalances) SetBalance(pool, account string, balance bnum.Num) *StaticBalances {
	if s.holdings == nil {
		s.holdings = make(map[string]bnum.Num)
	}
	s.holdings[holdingKey(pool, account)] = balance
	return s
}

func (s *StaticBalances) TotalSupply(pool string) (bnum.Num, bool) {
	if s == nil {
		return bnum.Zero, false
	}
	v, ok := s.supply[strings.ToLower(pool)]
	return v, ok
}

func (s *StaticBalances) Balance(pool, account string) (bnum.Num, bool) {
	if s == nil || account == "" {
		return bnum.Zero, false
	}
	v, ok := s.holdings[holdingKey(pool, account)]
	return v, ok
}

// userBalance is the account's pool-token balance, zero when unknown or disconnected.
func userBalance(balances Balances, pool, account string) bnum.Num {
	if balances == nil || account == "" {
		return bnum.Zero
	}
	if b, ok := balances.Balance(pool, account); ok {
		return b
	}
	return bnum.Zero
}
