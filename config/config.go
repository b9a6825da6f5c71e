package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/krazyTry/balancer-go/bmath"
	"github.com/krazyTry/balancer-go/bnum"
	"github.com/krazyTry/balancer-go/withdraw"
)

const (
	DefaultAddr      = ":8080"
	DefaultLogLevel  = "info"
	DefaultPoolsFile = "pools.json"
)

type Config struct {
	Addr        string
	LogLevel    string
	RPCEndpoint string
	PoolsFile   string

	MaxOutRatio       bnum.Num
	SlippageThreshold bnum.Num
	NonStandardTokens []string
}

// Load reads the given .env files (".env" when none are named) into the
// environment, then calls FromEnv. Missing files are not an error and
// variables already set win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:        getEnv("HTTP_ADDR", DefaultAddr),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		RPCEndpoint: os.Getenv("ETH_RPC_URL"),
		PoolsFile:   getEnv("POOLS_FILE", DefaultPoolsFile),

		MaxOutRatio:       bmath.MaxOutRatio,
		SlippageThreshold: withdraw.SlippageThreshold,
	}

	if v := os.Getenv("MAX_OUT_RATIO"); v != "" {
		ratio, err := bnum.Parse(v)
		if err != nil || !ratio.IsPositive() || ratio.GreaterThan(bnum.One) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMaxOutRatio, v)
		}
		cfg.MaxOutRatio = ratio
	}

	if v := os.Getenv("SLIPPAGE_THRESHOLD"); v != "" {
		threshold, err := bnum.Parse(v)
		if err != nil || !threshold.IsPositive() || !threshold.LessThan(bnum.One) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlippageThreshold, v)
		}
		cfg.SlippageThreshold = threshold
	}

	for _, addr := range strings.Split(os.Getenv("NON_STANDARD_TOKENS"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			cfg.NonStandardTokens = append(cfg.NonStandardTokens, addr)
		}
	}

	return cfg, nil
}

// CalculatorConfig is the policy part of the config.
func (c *Config) CalculatorConfig() withdraw.CalculatorConfig {
	return withdraw.CalculatorConfig{
		MaxOutRatio:       c.MaxOutRatio,
		SlippageThreshold: c.SlippageThreshold,
		NonStandardTokens: c.NonStandardTokens,
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
