package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krazyTry/balancer-go/api"
	"github.com/krazyTry/balancer-go/erc20"
	"github.com/krazyTry/balancer-go/logger"
	"github.com/krazyTry/balancer-go/snapshot"
	"github.com/krazyTry/balancer-go/withdraw"
	"github.com/spf13/cobra"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve withdrawal quotes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			log := logger.GetForComponent("serve")

			reg, err := snapshot.LoadRegistry(a.cfg.PoolsFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var chain api.BalanceLoader
			if a.cfg.RPCEndpoint != "" {
				client, err := erc20.Dial(ctx, a.cfg.RPCEndpoint)
				if err != nil {
					return fmt.Errorf("failed to connect to Ethereum node: %w", err)
				}
				defer client.Close()
				chain = erc20.NewReader(client, logger.GetForComponent("erc20"))
			} else {
				log.Warn().Msg("ETH_RPC_URL not set, balances must be sent with each request")
			}

			srv := api.NewServer(reg, withdraw.NewCalculator(a.cfg.CalculatorConfig()), chain, logger.GetForComponent("api"))

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(addr)
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default HTTP_ADDR)")
	return cmd
}
