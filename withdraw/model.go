package withdraw

import (
	"fmt"
	"strings"

	"github.com/krazyTry/balancer-go/bmath"
	"github.com/krazyTry/balancer-go/bnum"
)

// DepositType selects how liquidity leaves the pool.
type DepositType int

const (
	MultiAsset DepositType = iota
	SingleAsset
)

func (d DepositType) String() string {
	switch d {
	case MultiAsset:
		return "multi"
	case SingleAsset:
		return "single"
	default:
		return "unknown"
	}
}

// ParseDepositType accepts "multi"/"multi-asset" and "single"/"single-asset".
func ParseDepositType(s string) (DepositType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multi", "multi-asset", "multi_asset", "":
		return MultiAsset, nil
	case "single", "single-asset", "single_asset":
		return SingleAsset, nil
	default:
		return MultiAsset, fmt.Errorf("%w: %q", ErrUnknownDepositType, s)
	}
}

// Token is a pool member.
type Token struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol,omitempty"`
	// Balance in whole token units, as reported by the data source.
	Balance      bnum.Num `json:"balance"`
	Decimals     int32    `json:"decimals"`
	DenormWeight bnum.Num `json:"denormWeight"`
}

// DenormBalance the balance in base units (Balance * 10^Decimals)
func (t Token) DenormBalance() bnum.Num {
	return t.Balance.Shift(t.Decimals)
}

// Pool is a weighted pool snapshot. It is read-only for the duration of a calculation.
type Pool struct {
	Address string  `json:"address"`
	Tokens  []Token `json:"tokens"`
	// TotalShares in whole pool-share units.
	TotalShares bnum.Num `json:"totalShares"`
	TotalWeight bnum.Num `json:"totalWeight"`
	SwapFee     bnum.Num `json:"swapFee"`
}

// DenormSupply total pool shares in base units
func (p *Pool) DenormSupply() bnum.Num {
	return p.TotalShares.Mul(bmath.Bone)
}

// Token finds a member token, matching the address case-insensitively.
func (p *Pool) Token(address string) (Token, bool) {
	if p == nil {
		return Token{}, false
	}
	for _, t := range p.Tokens {
		if strings.EqualFold(t.Address, address) {
			return t, true
		}
	}
	return Token{}, false
}

func (p *Pool) HasToken(address string) bool {
	_, ok := p.Token(address)
	return ok
}

// MustToken is Token for callers that already know the token is a member.
// A miss is a programming error and panics.
func (p *Pool) MustToken(address string) Token {
	t, ok := p.Token(address)
	if !ok {
		if p == nil {
			panic(fmt.Sprintf("withdraw: token %s looked up on a nil pool", address))
		}
		panic(fmt.Sprintf("withdraw: token %s is not a member of pool %s", address, p.Address))
	}
	return t
}

// Validate checks the snapshot invariants: positive weights summing to
// TotalWeight and a swap fee in [0, 1).
func (p *Pool) Validate() error {
	if len(p.Tokens) == 0 {
		return fmt.Errorf("pool %s: %w", p.Address, ErrEmptyPool)
	}

	sum := bnum.Zero
	for _, t := range p.Tokens {
		if !t.DenormWeight.IsPositive() {
			return fmt.Errorf("pool %s token %s: %w", p.Address, t.Address, ErrNonPositiveWeight)
		}
		if t.Balance.IsNaN() || t.Balance.IsNegative() {
			return fmt.Errorf("pool %s token %s: %w", p.Address, t.Address, ErrInvalidBalance)
		}
		sum = sum.Add(t.DenormWeight)
	}
	if !sum.Equal(p.TotalWeight) {
		return fmt.Errorf("pool %s: weights sum to %s, total weight is %s: %w", p.Address, sum, p.TotalWeight, ErrWeightMismatch)
	}

	if p.SwapFee.IsNegative() || !p.SwapFee.LessThan(bnum.One) {
		return fmt.Errorf("pool %s: swap fee %s: %w", p.Address, p.SwapFee, ErrInvalidSwapFee)
	}
	if p.TotalShares.IsNaN() || p.TotalShares.IsNegative() {
		return fmt.Errorf("pool %s: total shares %s: %w", p.Address, p.TotalShares, ErrInvalidBalance)
	}
	return nil
}

// UserShare is the account's fraction of the pool now and after the withdrawal.
// An invalid field is undefined.
type UserShare struct {
	Current bnum.NullNum `json:"current"`
	Future  bnum.NullNum `json:"future"`
}

// WithdrawalRequest is what the user asked for. Share is the raw input: the
// fraction of the account's pool tokens to redeem, "1" meaning all of them.
type WithdrawalRequest struct {
	DepositType DepositType
	TokenOut    string
	Share       string
}
