// Package erc20 reads pool-token supply and holdings from chain. A Balancer
// pool is itself the ERC-20 for its shares, so the pool address doubles as the
// token address.
package erc20

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/krazyTry/balancer-go/bnum"
	"github.com/krazyTry/balancer-go/withdraw"
	"github.com/rs/zerolog"
)

const erc20ABI = `[
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const (
	dialTimeout = 15 * time.Second
	callTimeout = 10 * time.Second
)

var ErrInvalidAddress = errors.New("erc20: invalid address")

var parsedABI = func() abi.ABI {
	a, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic(err)
	}
	return a
}()

// Caller is the slice of ethclient.Client the reader needs.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	return ethclient.DialContext(ctx, url)
}

type Reader struct {
	caller Caller
	log    zerolog.Logger
}

func NewReader(caller Caller, log zerolog.Logger) *Reader {
	return &Reader{caller: caller, log: log}
}

// TotalSupply returns token.totalSupply() at the latest block.
func (r *Reader) TotalSupply(ctx context.Context, token string) (*big.Int, error) {
	to, err := address(token)
	if err != nil {
		return nil, err
	}
	return r.callUint(ctx, to, "totalSupply")
}

// BalanceOf returns token.balanceOf(owner) at the latest block.
func (r *Reader) BalanceOf(ctx context.Context, token, owner string) (*big.Int, error) {
	to, err := address(token)
	if err != nil {
		return nil, err
	}
	who, err := address(owner)
	if err != nil {
		return nil, err
	}
	return r.callUint(ctx, to, "balanceOf", who)
}

// LoadBalances fetches the pool supply and, when account is set, its holding.
// The result feeds withdraw.Calculator directly.
func (r *Reader) LoadBalances(ctx context.Context, pool, account string) (*withdraw.StaticBalances, error) {
	balances := withdraw.NewStaticBalances()

	supply, err := r.TotalSupply(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("total supply of %s: %w", pool, err)
	}
	balances.SetTotalSupply(pool, bnum.NewFromBigInt(supply, 0))

	if account != "" {
		held, err := r.BalanceOf(ctx, pool, account)
		if err != nil {
			return nil, fmt.Errorf("balance of %s in %s: %w", account, pool, err)
		}
		balances.SetBalance(pool, account, bnum.NewFromBigInt(held, 0))
	}

	r.log.Debug().
		Str("pool", pool).
		Str("account", account).
		Str("supply", supply.String()).
		Msg("loaded pool balances")
	return balances, nil
}

func (r *Reader) callUint(ctx context.Context, to common.Address, method string, args ...interface{}) (*big.Int, error) {
	input, err := parsedABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	out, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		r.log.Warn().Err(err).Str("to", to.Hex()).Str("method", method).Msg("eth_call failed")
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}

	values, err := parsedABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s from %s: %w", method, to.Hex(), err)
	}
	v, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unpack %s from %s: unexpected %T", method, to.Hex(), values[0])
	}
	return v, nil
}

func address(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
