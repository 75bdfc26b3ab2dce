// Package service implements the reservation engine: id allocation,
// availability, the reservation lifecycle, client balances and the
// reporting queries. Persistence is reached through the narrow store
// interfaces in ports.go so the engine can be exercised without a
// database.
package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/cabin-reservation/internal/repository"
)

// Error kinds surfaced by the engine. Handlers translate these with
// errors.Is: validation -> 400, not found -> 404, conflict -> 409,
// funds errors -> 422, storage unavailable -> 503.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrBlockedFunds       = errors.New("blocked funds")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// invalidf wraps ErrValidation with a human-readable reason.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// storeErr maps repository errors onto engine error kinds. Anything
// that is not a recognizable domain condition is treated as a
// transient storage failure the caller may retry.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: already exists", ErrConflict)
	default:
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}
