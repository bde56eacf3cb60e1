package ports

import (
	"context"

	"caseflow/domain/servicecase"
)

// CostEstimator provides repair cost estimates and service-order creation
// from the ERP side. Estimates are non-negative and total = parts + labor.
type CostEstimator interface {
	// EstimateRepair quotes a repair for the given fault.
	EstimateRepair(ctx context.Context, category, brand, faultText string) (servicecase.CostEstimate, error)

	// CreateServiceOrder registers a repair order downstream and returns the
	// external order reference.
	CreateServiceOrder(ctx context.Context, order servicecase.RepairOrder) (string, error)
}
