package main

import (
	"github.com/krazyTry/balancer-go/config"
	"github.com/krazyTry/balancer-go/logger"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	EnvFile  string
	LogLevel string
}

// app carries what every subcommand needs once the root pre-run has loaded it.
type app struct {
	flags globalFlags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "bexit",
		Short: "Quote withdrawals from weighted Balancer pools",
		Long: `bexit evaluates a liquidity withdrawal from a weighted pool: the account's
share before and after, whether the request is acceptable, the tokens paid
out and the slippage of a single-asset exit.

Configuration comes from the environment and an optional .env file:
  LOG_LEVEL, HTTP_ADDR, ETH_RPC_URL, POOLS_FILE, MAX_OUT_RATIO,
  SLIPPAGE_THRESHOLD, NON_STANDARD_TOKENS`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if a.flags.EnvFile != "" {
				files = append(files, a.flags.EnvFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			if a.flags.LogLevel != "" {
				cfg.LogLevel = a.flags.LogLevel
			}
			a.cfg = cfg

			logger.Initialize(cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.flags.EnvFile, "env", "", "dotenv file to load (default .env)")
	root.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "", "debug|info|warn|error (overrides LOG_LEVEL)")

	root.AddCommand(newQuoteCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}
