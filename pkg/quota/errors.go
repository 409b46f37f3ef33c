package quota

import "errors"

var (
	// ErrLedgerUnavailable indicates the backing store could not be
	// reached. The gate converts it into its fail-open policy.
	ErrLedgerUnavailable = errors.New("quota ledger unavailable")

	// ErrInvalidLimit indicates a plan with a nonsensical cap.
	ErrInvalidLimit = errors.New("invalid quota limit")
)
