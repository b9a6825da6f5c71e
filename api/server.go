// Package api serves withdrawal quotes over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/krazyTry/balancer-go/snapshot"
	"github.com/krazyTry/balancer-go/withdraw"
	"github.com/rs/zerolog"
)

const (
	readHeaderTimeout = 5 * time.Second
	balanceTimeout    = 20 * time.Second
)

// BalanceLoader fetches pool supply and holdings, e.g. *erc20.Reader.
type BalanceLoader interface {
	LoadBalances(ctx context.Context, pool, account string) (*withdraw.StaticBalances, error)
}

type Server struct {
	pools *snapshot.Registry
	calc  *withdraw.Calculator
	chain BalanceLoader
	log   zerolog.Logger

	mu     sync.Mutex
	server *http.Server
}

// NewServer wires the handlers. chain may be nil, in which case balances must
// come with each request.
func NewServer(pools *snapshot.Registry, calc *withdraw.Calculator, chain BalanceLoader, log zerolog.Logger) *Server {
	return &Server{
		pools: pools,
		calc:  calc,
		chain: chain,
		log:   log,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/health", s.health)
	r.GET("/pools", s.listPools)
	r.GET("/pools/:address", s.getPool)
	r.POST("/pools/:address/withdrawals/quote", s.quote)
	return r
}

// Start blocks until the server stops. A Shutdown is not an error.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	s.log.Info().Str("addr", addr).Int("pools", s.pools.Len()).Msg("http server started")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	s.log.Info().Msg("http server shutting down")
	return srv.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
