package ledger

import "errors"

// Sentinel failures surfaced by the guarded-update primitives. Callers map
// these onto the API error taxonomy.
var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrJobNotFound       = errors.New("job not found")
	ErrJobAlreadyPaid    = errors.New("job already paid")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
