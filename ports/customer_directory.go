package ports

import (
	"context"

	"caseflow/domain/servicecase"
)

// CustomerDirectory exposes CRM customer data and opportunity creation.
type CustomerDirectory interface {
	// GetProfile resolves a customer reference to tier, preferences and
	// budget data. Implementations must return a usable Standard-tier
	// profile rather than failing hard when the reference is unknown.
	GetProfile(ctx context.Context, customerRef string) (servicecase.CustomerProfile, error)

	// CreateOpportunity registers a replacement sales opportunity and
	// returns its external reference.
	CreateOpportunity(ctx context.Context, name string, estimatedValue float64) (string, error)
}
