package withdraw

import "errors"

var (
	ErrEmptyPool          = errors.New("pool has no tokens")
	ErrNonPositiveWeight  = errors.New("token weight must be positive")
	ErrWeightMismatch     = errors.New("token weights do not sum to total weight")
	ErrInvalidSwapFee     = errors.New("swap fee must be in [0, 1)")
	ErrInvalidBalance     = errors.New("balance must be a non-negative number")
	ErrUnknownDepositType = errors.New("unknown deposit type")

	// caller misuse, reported by Calculator before the pure functions run
	ErrPoolNotFound    = errors.New("pool not found")
	ErrMissingTokenOut = errors.New("single-asset exit needs a token out")
	ErrTokenNotInPool  = errors.New("token is not a member of the pool")
)
