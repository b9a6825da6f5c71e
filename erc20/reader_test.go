package erc20

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/krazyTry/balancer-go/bnum"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callArgs struct {
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Data  hexutil.Bytes   `json:"data"`
}

// fakeToken answers eth_call for ERC-20 views of every registered token.
type fakeToken struct {
	supply   map[common.Address]*big.Int
	balances map[common.Address]map[common.Address]*big.Int
	calls    int
}

func (f *fakeToken) Call(ctx context.Context, args callArgs, _ gethrpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	f.calls++
	input := args.Input
	if len(input) == 0 {
		input = args.Data
	}
	if args.To == nil || len(input) < 4 {
		return nil, errors.New("bad call")
	}

	supply, ok := f.supply[*args.To]
	if !ok {
		// no code at the address
		return hexutil.Bytes{}, nil
	}

	totalSupply := parsedABI.Methods["totalSupply"]
	balanceOf := parsedABI.Methods["balanceOf"]
	switch {
	case bytes.Equal(input[:4], totalSupply.ID):
		return totalSupply.Outputs.Pack(supply)
	case bytes.Equal(input[:4], balanceOf.ID):
		values, err := balanceOf.Inputs.Unpack(input[4:])
		if err != nil {
			return nil, err
		}
		owner := values[0].(common.Address)
		held, ok := f.balances[*args.To][owner]
		if !ok {
			held = new(big.Int)
		}
		return balanceOf.Outputs.Pack(held)
	}
	return nil, errors.New("execution reverted")
}

func newInprocEthClient(t *testing.T, f *fakeToken) *ethclient.Client {
	t.Helper()
	srv := gethrpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", f))
	c := ethclient.NewClient(gethrpc.DialInProc(srv))
	t.Cleanup(func() {
		c.Close()
		srv.Stop()
	})
	return c
}

var (
	pool  = common.HexToAddress("0x165a50bc092f6870dc111c349bae5fc35147ac86")
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
)

func tokens(t *testing.T) (*Reader, *fakeToken) {
	supply, _ := new(big.Int).SetString("100000000000000000000", 10)
	held, _ := new(big.Int).SetString("25000000000000000000", 10)
	f := &fakeToken{
		supply:   map[common.Address]*big.Int{pool: supply},
		balances: map[common.Address]map[common.Address]*big.Int{pool: {alice: held}},
	}
	return NewReader(newInprocEthClient(t, f), zerolog.Nop()), f
}

func TestReaderTotalSupplyAndBalance(t *testing.T) {
	r, _ := tokens(t)
	ctx := context.Background()

	supply, err := r.TotalSupply(ctx, pool.Hex())
	require.NoError(t, err)
	assert.Equal(t, "100000000000000000000", supply.String())

	held, err := r.BalanceOf(ctx, pool.Hex(), alice.Hex())
	require.NoError(t, err)
	assert.Equal(t, "25000000000000000000", held.String())

	none, err := r.BalanceOf(ctx, pool.Hex(), "0x0000000000000000000000000000000000000b0b")
	require.NoError(t, err)
	assert.Zero(t, none.Sign())
}

func TestReaderLoadBalances(t *testing.T) {
	r, f := tokens(t)

	balances, err := r.LoadBalances(context.Background(), "0x165a50bc092f6870dc111c349bae5fc35147ac86", "0x00000000000000000000000000000000000A11CE")
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls)

	supply, ok := balances.TotalSupply("0x165a50bc092f6870dc111c349bae5fc35147ac86")
	require.True(t, ok)
	assert.True(t, supply.Equal(bnum.MustNew("1e20")))

	held, ok := balances.Balance("0x165a50bc092f6870dc111c349bae5fc35147ac86", "0x00000000000000000000000000000000000a11ce")
	require.True(t, ok)
	assert.True(t, held.Equal(bnum.MustNew("25e18")))
}

func TestReaderLoadBalancesWithoutAccount(t *testing.T) {
	r, f := tokens(t)

	balances, err := r.LoadBalances(context.Background(), pool.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.calls)

	_, ok := balances.TotalSupply(pool.Hex())
	assert.True(t, ok)
}

func TestReaderErrors(t *testing.T) {
	r, f := tokens(t)
	ctx := context.Background()

	_, err := r.TotalSupply(ctx, "not-an-address")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = r.BalanceOf(ctx, pool.Hex(), "0x123")
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.Equal(t, 0, f.calls)

	// an address with no contract returns empty data
	_, err = r.TotalSupply(ctx, "0x0000000000000000000000000000000000000001")
	assert.Error(t, err)

	_, err = r.LoadBalances(ctx, "0x0000000000000000000000000000000000000001", alice.Hex())
	assert.Error(t, err)
}
