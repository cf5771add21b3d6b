package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrDeactivateExpiredCouponsCommandIsNotConstructed = errors.New(
	"DeactivateExpiredCouponsCommand must be created via NewDeactivateExpiredCouponsCommand constructor",
)

// DeactivateExpiredCouponsCommand represents the periodic sweep that flips
// expired coupons to inactive. Apply-time checks stay authoritative; the sweep
// only keeps the stored flag in line with the clock.
type DeactivateExpiredCouponsCommand struct {
	guard guard.ConstructorGuard
}

// NewDeactivateExpiredCouponsCommand creates a command to sweep expired coupons.
func NewDeactivateExpiredCouponsCommand() (DeactivateExpiredCouponsCommand, error) {
	return DeactivateExpiredCouponsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateExpiredCouponsCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateExpiredCouponsCommandIsNotConstructed)
}
