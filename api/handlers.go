package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/krazyTry/balancer-go/bnum"
	"github.com/krazyTry/balancer-go/withdraw"
)

// QuoteRequest is the body of a quote call. TotalSupply and Balance are pool
// tokens in base units; when TotalSupply is absent the server asks the chain.
type QuoteRequest struct {
	Account     string `json:"account"`
	DepositType string `json:"depositType"`
	TokenOut    string `json:"tokenOut"`
	Share       string `json:"share"`
	TotalSupply string `json:"totalSupply"`
	Balance     string `json:"balance"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listPools(c *gin.Context) {
	Success(c, s.pools.All())
}

func (s *Server) getPool(c *gin.Context) {
	pool, ok := s.pools.Get(c.Param("address"))
	if !ok {
		NotFound(c, withdraw.ErrPoolNotFound.Error())
		return
	}
	Success(c, pool)
}

func (s *Server) quote(c *gin.Context) {
	pool, ok := s.pools.Get(c.Param("address"))
	if !ok {
		NotFound(c, withdraw.ErrPoolNotFound.Error())
		return
	}

	var body QuoteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	depositType, err := withdraw.ParseDepositType(body.DepositType)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	balances, err := s.balances(c.Request.Context(), pool.Address, body)
	if err != nil {
		if errors.Is(err, errBadBalance) {
			BadRequest(c, err.Error())
			return
		}
		s.log.Error().Err(err).Str("pool", pool.Address).Msg("loading balances")
		BadGateway(c, "could not load balances")
		return
	}

	q, err := s.calc.Quote(pool, strings.TrimSpace(body.Account), withdraw.WithdrawalRequest{
		DepositType: depositType,
		TokenOut:    body.TokenOut,
		Share:       body.Share,
	}, balances)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, q)
}

var errBadBalance = errors.New("balances must be non-negative integers in base units")

func (s *Server) balances(ctx context.Context, pool string, body QuoteRequest) (withdraw.Balances, error) {
	account := strings.TrimSpace(body.Account)

	if body.TotalSupply != "" {
		supply, err := baseUnits(body.TotalSupply)
		if err != nil {
			return nil, err
		}
		b := withdraw.NewStaticBalances().SetTotalSupply(pool, supply)
		if account != "" && body.Balance != "" {
			held, err := baseUnits(body.Balance)
			if err != nil {
				return nil, err
			}
			b.SetBalance(pool, account, held)
		}
		return b, nil
	}

	if s.chain == nil {
		// supply unknown: the quote reports loading
		return withdraw.NewStaticBalances(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, balanceTimeout)
	defer cancel()
	return s.chain.LoadBalances(ctx, pool, account)
}

func baseUnits(s string) (bnum.Num, error) {
	n, err := bnum.Parse(s)
	if err != nil || n.IsNegative() || !n.IsInteger() {
		return bnum.NaN, errBadBalance
	}
	return n, nil
}
