package notify

import (
	"context"

	"chipdrop/internal/core/domain/model/kernel"
)

// DisabledHydrator is a TemplateHydrator for deployments without company
// templates. It reports no template for every company, so the dispatcher
// always uses the built-in wording.
type DisabledHydrator struct{}

// NewDisabledHydrator creates a hydrator that never hydrates.
func NewDisabledHydrator() DisabledHydrator {
	return DisabledHydrator{}
}

// Hydrate always reports ok=false.
func (DisabledHydrator) Hydrate(
	_ context.Context,
	_ kernel.UUID,
	_ string,
	_ map[string]string,
) (string, bool, error) {
	return "", false, nil
}
