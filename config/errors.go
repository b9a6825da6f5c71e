package config

import "errors"

// ErrInvalidMaxOutRatio indicates MAX_OUT_RATIO is not a number in (0, 1].
var ErrInvalidMaxOutRatio = errors.New("MAX_OUT_RATIO must be a number in (0, 1]")

// ErrInvalidSlippageThreshold indicates SLIPPAGE_THRESHOLD is not a number in (0, 1).
var ErrInvalidSlippageThreshold = errors.New("SLIPPAGE_THRESHOLD must be a number in (0, 1)")
