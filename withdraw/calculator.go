package withdraw

import (
	"fmt"
	"strings"

	"github.com/krazyTry/balancer-go/bmath"
	"github.com/krazyTry/balancer-go/bnum"
)

const (
	ExitPoolMethod             = "exitPool"
	ExitswapPoolAmountInMethod = "exitswapPoolAmountIn"

	ConnectWalletNotification = "Connect wallet to remove liquidity"
	NonStandardTokenWarning   = "This pool contains a non-standard token that may cause potential balance issues or unknown arbitrage opportunities."
	NonStandardTokenDocsURL   = "https://docs.balancer.finance/protocol/limitations#erc20-tokens"
)

// CalculatorConfig tunes the policy parts of a quote.
type CalculatorConfig struct {
	// MaxOutRatio caps a single-asset exit; zero means the whole reserve.
	MaxOutRatio bnum.Num
	// SlippageThreshold is the inclusive warning level. Zero (the unset value)
	// and NaN mean the package SlippageThreshold, so a threshold of exactly 0
	// cannot be expressed; use the smallest positive value to always warn.
	SlippageThreshold bnum.Num
	// NonStandardTokens are token addresses that earn a pool a warning.
	NonStandardTokens []string
}

// Calculator assembles everything a withdrawal form shows from one set of
// inputs. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	maxOutRatio bnum.Num
	threshold   bnum.Num
	nonStandard map[string]struct{}
}

func NewCalculator(cfg CalculatorConfig) *Calculator {
	threshold := cfg.SlippageThreshold
	if threshold.IsZero() || threshold.IsNaN() {
		threshold = SlippageThreshold
	}

	nonStandard := make(map[string]struct{}, len(cfg.NonStandardTokens))
	for _, addr := range cfg.NonStandardTokens {
		nonStandard[strings.ToLower(addr)] = struct{}{}
	}

	return &Calculator{
		maxOutRatio: cfg.MaxOutRatio,
		threshold:   threshold,
		nonStandard: nonStandard,
	}
}

// TokenAmount is an expected payout of one token, in base units.
type TokenAmount struct {
	Address string   `json:"address"`
	Symbol  string   `json:"symbol,omitempty"`
	Amount  bnum.Num `json:"amount"`
}

// ExitCall is the contract call a submitter should make for a valid quote.
type ExitCall struct {
	Method        string   `json:"method"`
	Pool          string   `json:"pool"`
	PoolAmountIn  string   `json:"poolAmountIn"`
	MinAmountsOut []string `json:"minAmountsOut,omitempty"`
	TokenOut      string   `json:"tokenOut,omitempty"`
	MinAmountOut  string   `json:"minAmountOut,omitempty"`
}

// Quote is the full answer for one evaluation of the withdrawal form.
type Quote struct {
	Pool        string           `json:"pool"`
	Account     string           `json:"account,omitempty"`
	DepositType string           `json:"depositType"`
	Status      ValidationStatus `json:"status"`
	// Message explains a rejected input.
	Message   string          `json:"message,omitempty"`
	UserShare UserShare       `json:"userShare"`
	Slippage  *SlippageResult `json:"slippage,omitempty"`
	// SlippageMessage is set when the slippage warning is due.
	SlippageMessage string    `json:"slippageMessage,omitempty"`
	TokenWarning    string    `json:"tokenWarning,omitempty"`
	TokenWarningURL string    `json:"tokenWarningUrl,omitempty"`
	Notification    string    `json:"notification,omitempty"`
	FlowState       FlowState `json:"flowState"`
	// Loading is true while an account is connected but the pool supply is unknown.
	Loading       bool          `json:"loading"`
	ActionEnabled bool          `json:"actionEnabled"`
	PoolAmountIn  *bnum.Num     `json:"poolAmountIn,omitempty"`
	Outputs       []TokenAmount `json:"outputs,omitempty"`
	Exit          *ExitCall     `json:"exit,omitempty"`
}

// Quote evaluates req for account against pool. Errors are reserved for caller
// misuse (no pool, unknown token); problems with the user's input are reported
// through Quote.Status.
func (c *Calculator) Quote(pool *Pool, account string, req WithdrawalRequest, balances Balances) (*Quote, error) {
	if pool == nil {
		return nil, ErrPoolNotFound
	}
	if req.DepositType == SingleAsset {
		if req.TokenOut == "" {
			return nil, ErrMissingTokenOut
		}
		if !pool.HasToken(req.TokenOut) {
			return nil, fmt.Errorf("%w: %s in %s", ErrTokenNotInPool, req.TokenOut, pool.Address)
		}
	}

	balance := userBalance(balances, pool.Address, account)
	_, hasSupply := lookupSupply(balances, pool.Address)

	status := ValidateWithdrawal(req.Share, ValidationContext{
		Balance:     balance,
		DepositType: req.DepositType,
		Pool:        pool,
		TokenOut:    req.TokenOut,
		MaxOutRatio: c.maxOutRatio,
	})
	valid := status.IsValid()

	share := bnum.Zero
	if valid {
		share = bnum.New(req.Share)
	}

	q := &Quote{
		Pool:        pool.Address,
		Account:     account,
		DepositType: req.DepositType.String(),
		Status:      status,
		Message:     status.Message(),
		UserShare:   ComputeUserShare(pool, account, valid, share, balances),
		Loading:     account != "" && !hasSupply,
	}

	var slippage SlippageResult
	if valid {
		poolAmountIn := UserTokenAmount(balance, share)
		q.PoolAmountIn = &poolAmountIn

		slippage = EvaluateSlippageWithThreshold(
			PoolSlippageInput(pool, req.DepositType, req.TokenOut, poolAmountIn),
			c.threshold,
		)
		q.Slippage = &slippage
		if slippage.ShouldWarn {
			q.SlippageMessage = fmt.Sprintf("Removing liquidity will incur %s of slippage", slippage.Slippage.FormatPercentage(2))
		}

		q.Outputs = expectedOutputs(pool, req, poolAmountIn, slippage)
		q.Exit = exitCall(pool, req, poolAmountIn)

		if c.hasNonStandardToken(pool) {
			q.TokenWarning = NonStandardTokenWarning
			q.TokenWarningURL = NonStandardTokenDocsURL
		}
	}

	if account == "" {
		q.Notification = ConnectWalletNotification
	}

	q.FlowState = DeriveFlowState(account, status, slippage)
	q.ActionEnabled = account != "" && valid && hasSupply
	return q, nil
}

func (c *Calculator) hasNonStandardToken(pool *Pool) bool {
	for _, t := range pool.Tokens {
		if _, ok := c.nonStandard[strings.ToLower(t.Address)]; ok {
			return true
		}
	}
	return false
}

func lookupSupply(balances Balances, pool string) (bnum.Num, bool) {
	if balances == nil {
		return bnum.Zero, false
	}
	return balances.TotalSupply(pool)
}

func expectedOutputs(pool *Pool, req WithdrawalRequest, poolAmountIn bnum.Num, slippage SlippageResult) []TokenAmount {
	if req.DepositType == SingleAsset {
		token := pool.MustToken(req.TokenOut)
		return []TokenAmount{{Address: token.Address, Symbol: token.Symbol, Amount: slippage.AmountOut}}
	}

	reserves := make([]bnum.Num, len(pool.Tokens))
	for i, t := range pool.Tokens {
		reserves[i] = t.DenormBalance()
	}
	amounts := bmath.CalcTokensOutGivenPoolIn(reserves, pool.DenormSupply(), poolAmountIn)

	out := make([]TokenAmount, len(pool.Tokens))
	for i, t := range pool.Tokens {
		out[i] = TokenAmount{Address: t.Address, Symbol: t.Symbol, Amount: amounts[i]}
	}
	return out
}

// exitCall mirrors what the form submits: the integer pool amount and no
// minimum outputs.
func exitCall(pool *Pool, req WithdrawalRequest, poolAmountIn bnum.Num) *ExitCall {
	call := &ExitCall{
		Pool:         pool.Address,
		PoolAmountIn: poolAmountIn.IntegerValue().String(),
	}
	if req.DepositType == SingleAsset {
		call.Method = ExitswapPoolAmountInMethod
		call.TokenOut = pool.MustToken(req.TokenOut).Address
		call.MinAmountOut = "0"
		return call
	}

	call.Method = ExitPoolMethod
	call.MinAmountsOut = make([]string, len(pool.Tokens))
	for i := range call.MinAmountsOut {
		call.MinAmountsOut[i] = "0"
	}
	return call
}
