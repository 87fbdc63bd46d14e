package commands

import (
	"errors"

	"chipdrop/internal/pkg/guard"
)

var ErrExpireDeliveriesCommandIsNotConstructed = errors.New(
	"ExpireDeliveriesCommand must be created via NewExpireDeliveriesCommand constructor",
)

// ExpireDeliveriesCommand triggers one expiry sweep over scheduled
// deliveries. The command carries no parameters; thresholds belong to the
// handler's policy configuration.
type ExpireDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireDeliveriesCommand creates a sweep command.
func NewExpireDeliveriesCommand() ExpireDeliveriesCommand {
	return ExpireDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ExpireDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrExpireDeliveriesCommandIsNotConstructed)
}
