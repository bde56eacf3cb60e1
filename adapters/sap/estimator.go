package sap

import (
	"context"
	"fmt"
	"log"
	"time"

	"caseflow/domain/catalog"
	"caseflow/domain/core"
	"caseflow/domain/servicecase"
	"caseflow/ports"
)

// Default quote applied when no known error signature matches the fault text.
const (
	defaultRepairCost = 300
	partsShare        = 0.6
	laborShare        = 0.4
)

// Estimator simulates the SAP repair-cost service. Quotes come from the
// static failure tables; an optional seeded RNG stream adds realistic
// variation of -50..+100 on top of the table cost.
type Estimator struct {
	catalog    *catalog.Catalog
	rng        ports.RNG
	jitterSeed int64
}

// NewEstimator creates a cost estimator. Pass a zero seed (or nil RNG) for
// fully deterministic quotes.
func NewEstimator(cat *catalog.Catalog, rng ports.RNG, jitterSeed int64) *Estimator {
	return &Estimator{catalog: cat, rng: rng, jitterSeed: jitterSeed}
}

// EstimateRepair quotes a repair by matching the fault description against
// the known-error table for the (category, brand) pair.
func (e *Estimator) EstimateRepair(ctx context.Context, category, brand, faultText string) (servicecase.CostEstimate, error) {
	cost := float64(defaultRepairCost)
	availability := servicecase.AvailabilityMedium

	if sig, ok := e.catalog.MatchError(category, brand, faultText); ok {
		cost = sig.RepairCost
		if sig.SuccessRate > 0.9 {
			availability = servicecase.AvailabilityHigh
		}
	}

	if e.rng != nil && e.jitterSeed != 0 {
		stream, err := e.rng.SeededStream(ctx, "sap-cost-jitter", e.jitterSeed)
		if err == nil {
			cost += float64(stream.Intn(151) - 50)
		} else {
			log.Printf("[SAP] jitter stream unavailable, using table cost: %v", err)
		}
	}
	cost = core.NonNegative(cost)

	parts := cost * partsShare
	labor := cost * laborShare
	return servicecase.CostEstimate{
		PartsCost:              parts,
		LaborCost:              labor,
		TotalCost:              parts + labor,
		PartsAvailability:      availability,
		LeadTime:               "2-5 business days",
		TechnicianAvailability: "next week",
	}, nil
}

// CreateServiceOrder registers a repair order in the simulated ERP and
// returns the external order reference.
func (e *Estimator) CreateServiceOrder(ctx context.Context, order servicecase.RepairOrder) (string, error) {
	ref := fmt.Sprintf("SO_%s_%.8s", time.Now().Format("20060102"), order.OrderID.String())
	log.Printf("[SAP] service order %s created for %s %s (total %.2f CHF)",
		ref, order.Device.Brand, order.Device.Type, order.Costs.TotalCost)
	return ref, nil
}
