// Package snapshot reads weighted-pool snapshots as published by the Balancer
// subgraph and turns them into withdraw.Pool values.
//
// Accepted shapes: a bare pool object, {"data":{"pool":{...}}} for a single
// pool, and a bare array, {"pools":[...]} or {"data":{"pools":[...]}} for a
// list. Numeric fields may be JSON numbers or decimal strings.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/krazyTry/balancer-go/bnum"
	"github.com/krazyTry/balancer-go/withdraw"
	"github.com/tidwall/gjson"
)

var ErrInvalidSnapshot = errors.New("snapshot: invalid pool snapshot")

// uint256 has 78 digits
const maxDecimals = 77

// Parse decodes one pool.
func Parse(data []byte) (*withdraw.Pool, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidSnapshot)
	}

	root := gjson.ParseBytes(data)
	if p := root.Get("data.pool"); p.Exists() {
		root = p
	}
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected a pool object", ErrInvalidSnapshot)
	}
	return parsePool(root)
}

// ParseList decodes every pool in data. A single pool object yields a list of one.
func ParseList(data []byte) ([]*withdraw.Pool, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidSnapshot)
	}

	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
	case root.Get("data.pools").IsArray():
		root = root.Get("data.pools")
	case root.Get("pools").IsArray():
		root = root.Get("pools")
	case root.Get("data.pool").IsObject():
		root = root.Get("data.pool")
		fallthrough
	case root.IsObject():
		p, err := parsePool(root)
		if err != nil {
			return nil, err
		}
		return []*withdraw.Pool{p}, nil
	default:
		return nil, fmt.Errorf("%w: expected a pool or a list of pools", ErrInvalidSnapshot)
	}

	var (
		pools []*withdraw.Pool
		err   error
	)
	root.ForEach(func(_, value gjson.Result) bool {
		var p *withdraw.Pool
		if p, err = parsePool(value); err != nil {
			return false
		}
		pools = append(pools, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return pools, nil
}

// Load reads and parses a snapshot file.
func Load(path string) ([]*withdraw.Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	pools, err := ParseList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pools, nil
}

func parsePool(r gjson.Result) (*withdraw.Pool, error) {
	address, err := parseAddress(r.Get("id"))
	if err != nil {
		return nil, fmt.Errorf("pool id: %w", err)
	}

	pool := &withdraw.Pool{Address: address}

	tokens := r.Get("tokens")
	if !tokens.IsArray() {
		return nil, fmt.Errorf("%w: pool %s has no tokens array", ErrInvalidSnapshot, address)
	}
	for i, t := range tokens.Array() {
		token, err := parseToken(t)
		if err != nil {
			return nil, fmt.Errorf("pool %s token %d: %w", address, i, err)
		}
		pool.Tokens = append(pool.Tokens, token)
	}

	if pool.TotalShares, err = number(r.Get("totalShares")); err != nil {
		return nil, fmt.Errorf("pool %s totalShares: %w", address, err)
	}
	if pool.SwapFee, err = number(r.Get("swapFee")); err != nil {
		return nil, fmt.Errorf("pool %s swapFee: %w", address, err)
	}

	// older snapshots omit totalWeight
	if tw := r.Get("totalWeight"); tw.Exists() {
		if pool.TotalWeight, err = number(tw); err != nil {
			return nil, fmt.Errorf("pool %s totalWeight: %w", address, err)
		}
	} else {
		pool.TotalWeight = bnum.Zero
		for _, t := range pool.Tokens {
			pool.TotalWeight = pool.TotalWeight.Add(t.DenormWeight)
		}
	}

	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return pool, nil
}

func parseToken(r gjson.Result) (withdraw.Token, error) {
	var (
		token withdraw.Token
		err   error
	)
	if token.Address, err = parseAddress(r.Get("address")); err != nil {
		return token, err
	}
	token.Symbol = r.Get("symbol").String()

	if token.Balance, err = number(r.Get("balance")); err != nil {
		return token, fmt.Errorf("balance: %w", err)
	}
	if token.DenormWeight, err = number(r.Get("denormWeight")); err != nil {
		return token, fmt.Errorf("denormWeight: %w", err)
	}

	decimals := r.Get("decimals")
	if !decimals.Exists() {
		return token, fmt.Errorf("%w: missing decimals", ErrInvalidSnapshot)
	}
	d, err := number(decimals)
	if err != nil {
		return token, fmt.Errorf("decimals: %w", err)
	}
	if !d.IsInteger() || d.IsNegative() || d.GreaterThan(bnum.NewFromInt(maxDecimals)) {
		return token, fmt.Errorf("%w: decimals %s out of range", ErrInvalidSnapshot, d)
	}
	token.Decimals = int32(d.Decimal().IntPart())
	return token, nil
}

func parseAddress(r gjson.Result) (string, error) {
	s := strings.TrimSpace(r.String())
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q is not an address", ErrInvalidSnapshot, s)
	}
	return strings.ToLower(common.HexToAddress(s).Hex()), nil
}

// number reads a JSON number verbatim (no float round trip) or a decimal string.
func number(r gjson.Result) (bnum.Num, error) {
	var raw string
	switch r.Type {
	case gjson.Number:
		raw = r.Raw
	case gjson.String:
		raw = r.Str
	default:
		return bnum.NaN, fmt.Errorf("%w: expected a number, got %q", ErrInvalidSnapshot, r.Raw)
	}

	n, err := bnum.Parse(raw)
	if err != nil {
		return bnum.NaN, fmt.Errorf("%w: %q is not a number", ErrInvalidSnapshot, raw)
	}
	return n, nil
}
