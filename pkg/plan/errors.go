package plan

import "errors"

var (
	ErrInvalidCatalog    = errors.New("invalid plan catalog")
	ErrFailedToLoadPlans = errors.New("failed to load plans")
	ErrStoreUnavailable  = errors.New("plan store unavailable")
)
