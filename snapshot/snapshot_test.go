package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/krazyTry/balancer-go/bnum"
	"github.com/krazyTry/balancer-go/withdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wethDai = `{
  "id": "0x165A50Bc092f6870DC111C349baE5Fc35147ac86",
  "totalShares": "100",
  "totalWeight": "2",
  "swapFee": "0.003",
  "tokens": [
    {"address": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", "symbol": "WETH", "balance": "1000", "decimals": 18, "denormWeight": "1"},
    {"address": "0x6B175474E89094C44Da98b954EedeAC495271d0F", "symbol": "DAI", "balance": 1000.123456789012345678, "decimals": 18, "denormWeight": 1}
  ]
}`

func TestParse(t *testing.T) {
	pool, err := Parse([]byte(wethDai))
	require.NoError(t, err)

	assert.Equal(t, "0x165a50bc092f6870dc111c349bae5fc35147ac86", pool.Address)
	require.Len(t, pool.Tokens, 2)
	assert.Equal(t, "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", pool.Tokens[0].Address)
	assert.Equal(t, "WETH", pool.Tokens[0].Symbol)
	assert.Equal(t, int32(18), pool.Tokens[0].Decimals)
	assert.True(t, pool.SwapFee.Equal(bnum.MustNew("0.003")))
	assert.True(t, pool.TotalShares.Equal(bnum.MustNew("100")))

	// numbers are taken digit for digit, not through float64
	assert.Equal(t, "1000.123456789012345678", pool.Tokens[1].Balance.String())
}

func TestParseWrapped(t *testing.T) {
	pool, err := Parse([]byte(`{"data":{"pool":` + wethDai + `}}`))
	require.NoError(t, err)
	assert.Len(t, pool.Tokens, 2)
}

func TestParseDerivesTotalWeight(t *testing.T) {
	raw := `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"10","swapFee":"0.01","tokens":[
		{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","balance":"5","decimals":18,"denormWeight":"40"},
		{"address":"0x6b175474e89094c44da98b954eedeac495271d0f","balance":"5","decimals":18,"denormWeight":"10"}]}`
	pool, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.True(t, pool.TotalWeight.Equal(bnum.MustNew("50")))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed", `{"id":`},
		{"not an object", `"pool"`},
		{"bad pool id", `{"id":"pool-1","tokens":[]}`},
		{"no tokens", `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"1","swapFee":"0","totalWeight":"1"}`},
		{"bad balance", `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"1","swapFee":"0","totalWeight":"1","tokens":[
			{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","balance":"lots","decimals":18,"denormWeight":"1"}]}`},
		{"missing decimals", `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"1","swapFee":"0","totalWeight":"1","tokens":[
			{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","balance":"1","denormWeight":"1"}]}`},
		{"decimals not a number", `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"1","swapFee":"0","totalWeight":"1","tokens":[
			{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","balance":"1","decimals":"abc","denormWeight":"1"}]}`},
		{"fractional decimals", `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"1","swapFee":"0","totalWeight":"1","tokens":[
			{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","balance":"1","decimals":18.5,"denormWeight":"1"}]}`},
		{"negative decimals", `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"1","swapFee":"0","totalWeight":"1","tokens":[
			{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","balance":"1","decimals":-1,"denormWeight":"1"}]}`},
		{"weight mismatch", `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"1","swapFee":"0","totalWeight":"3","tokens":[
			{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","balance":"1","decimals":18,"denormWeight":"1"}]}`},
		{"fee of one", `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"1","swapFee":"1","totalWeight":"1","tokens":[
			{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","balance":"1","decimals":18,"denormWeight":"1"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw))
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}

func TestParseKeepsPoolValidationError(t *testing.T) {
	raw := `{"id":"0x165a50bc092f6870dc111c349bae5fc35147ac86","totalShares":"1","swapFee":"0","totalWeight":"3","tokens":[
		{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","balance":"1","decimals":18,"denormWeight":"1"}]}`
	_, err := Parse([]byte(raw))
	assert.ErrorIs(t, err, withdraw.ErrWeightMismatch)
}

func TestParseList(t *testing.T) {
	shapes := map[string]string{
		"array":   `[` + wethDai + `]`,
		"pools":   `{"pools":[` + wethDai + `]}`,
		"data":    `{"data":{"pools":[` + wethDai + `]}}`,
		"single":  wethDai,
		"wrapped": `{"data":{"pool":` + wethDai + `}}`,
	}
	for name, raw := range shapes {
		t.Run(name, func(t *testing.T) {
			pools, err := ParseList([]byte(raw))
			require.NoError(t, err)
			require.Len(t, pools, 1)
			assert.Len(t, pools[0].Tokens, 2)
		})
	}

	_, err := ParseList([]byte(`[` + wethDai + `, {"id":"nope"}]`))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = ParseList([]byte(`42`))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pools":[`+wethDai+`]}`), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	pool, ok := reg.Get("0x165A50BC092F6870DC111C349BAE5FC35147AC86")
	require.True(t, ok)
	assert.Equal(t, "0x165a50bc092f6870dc111c349bae5fc35147ac86", pool.Address)

	_, ok = reg.Get("0x0000000000000000000000000000000000000001")
	assert.False(t, ok)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	pool, err := Parse([]byte(wethDai))
	require.NoError(t, err)

	_, err = NewRegistry([]*withdraw.Pool{pool, pool})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}
