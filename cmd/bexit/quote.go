package main

import (
	"encoding/json"
	"fmt"

	"github.com/krazyTry/balancer-go/bnum"
	"github.com/krazyTry/balancer-go/erc20"
	"github.com/krazyTry/balancer-go/logger"
	"github.com/krazyTry/balancer-go/snapshot"
	"github.com/krazyTry/balancer-go/withdraw"
	"github.com/spf13/cobra"
)

type quoteFlags struct {
	PoolsFile string
	Pool      string
	Account   string
	Share     string
	Mode      string
	Token     string
	Supply    string
	Balance   string
	RPC       string
}

func newQuoteCmd(a *app) *cobra.Command {
	var f quoteFlags

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Evaluate one withdrawal and print the quote as JSON",
		Long: `Evaluate one withdrawal and print the quote as JSON.

Pool-token balances come from --supply/--balance (base units) when given,
otherwise from the chain when an RPC endpoint is configured.

Examples:
  bexit quote --pool 0x165a... --account 0xabc... --share 0.5
  bexit quote --pool 0x165a... --share 1 --mode single --token 0xc02a... \
      --supply 100000000000000000000 --balance 100000000000000000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.PoolsFile == "" {
				f.PoolsFile = a.cfg.PoolsFile
			}
			if f.RPC == "" {
				f.RPC = a.cfg.RPCEndpoint
			}

			reg, err := snapshot.LoadRegistry(f.PoolsFile)
			if err != nil {
				return err
			}
			pool, ok := reg.Get(f.Pool)
			if !ok {
				return fmt.Errorf("%w: %s", withdraw.ErrPoolNotFound, f.Pool)
			}

			depositType, err := withdraw.ParseDepositType(f.Mode)
			if err != nil {
				return err
			}

			balances, err := quoteBalances(cmd, f, pool.Address)
			if err != nil {
				return err
			}

			q, err := withdraw.NewCalculator(a.cfg.CalculatorConfig()).Quote(pool, f.Account, withdraw.WithdrawalRequest{
				DepositType: depositType,
				TokenOut:    f.Token,
				Share:       f.Share,
			}, balances)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(q)
		},
	}

	cmd.Flags().StringVar(&f.PoolsFile, "pools", "", "pool snapshot file (default POOLS_FILE)")
	cmd.Flags().StringVar(&f.Pool, "pool", "", "pool address")
	cmd.Flags().StringVar(&f.Account, "account", "", "account address; empty quotes a disconnected wallet")
	cmd.Flags().StringVar(&f.Share, "share", "", "fraction of the account's pool tokens to redeem, 1 for all")
	cmd.Flags().StringVar(&f.Mode, "mode", "multi", "multi|single")
	cmd.Flags().StringVar(&f.Token, "token", "", "token out for a single-asset exit")
	cmd.Flags().StringVar(&f.Supply, "supply", "", "pool-token total supply in base units")
	cmd.Flags().StringVar(&f.Balance, "balance", "", "account pool-token balance in base units")
	cmd.Flags().StringVar(&f.RPC, "rpc", "", "JSON-RPC endpoint (default ETH_RPC_URL)")
	_ = cmd.MarkFlagRequired("pool")
	return cmd
}

func quoteBalances(cmd *cobra.Command, f quoteFlags, pool string) (withdraw.Balances, error) {
	if f.Supply != "" {
		supply, err := bnum.Parse(f.Supply)
		if err != nil {
			return nil, fmt.Errorf("--supply: %w", err)
		}
		b := withdraw.NewStaticBalances().SetTotalSupply(pool, supply)
		if f.Account != "" && f.Balance != "" {
			held, err := bnum.Parse(f.Balance)
			if err != nil {
				return nil, fmt.Errorf("--balance: %w", err)
			}
			b.SetBalance(pool, f.Account, held)
		}
		return b, nil
	}

	if f.RPC == "" {
		return withdraw.NewStaticBalances(), nil
	}

	client, err := erc20.Dial(cmd.Context(), f.RPC)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", f.RPC, err)
	}
	defer client.Close()

	return erc20.NewReader(client, logger.GetForComponent("erc20")).LoadBalances(cmd.Context(), pool, f.Account)
}
