package pipeline

import (
	"math"

	"caseflow/domain/core"
	"caseflow/domain/servicecase"
)

const (
	depreciationRate = 0.08
	residualShare    = 0.10

	// Repair-focused ceiling for devices still worth repairing.
	standardCeilingCap = 800
	// Old devices get a wider, replacement-biased ceiling so an artificially
	// low repair gate cannot block replacement consideration.
	strategicCeilingFloor = 1800
	strategicCeilingCap   = 2500
	strategicAgeThreshold = 10

	ceilingValueShare = 0.6
)

// Enrich derives the cost, customer and valuation fields from the
// pre-fetched collaborator data. Missing collaborator values degrade to
// conservative defaults instead of aborting the case.
func (s *Stages) Enrich(rec servicecase.CaseRecord, data EnrichmentData) servicecase.EnrichmentPatch {
	age := rec.Inputs.Age

	est := data.Estimate
	est.PartsCost = core.NonNegative(est.PartsCost)
	est.LaborCost = core.NonNegative(est.LaborCost)
	est.TotalCost = core.NonNegative(est.TotalCost)
	if est.TotalCost == 0 {
		// Cost estimator unavailable: documented default quote.
		est.TotalCost = 300
		est.PartsCost = 180
		est.LaborCost = 120
	}
	if est.PartsAvailability == "" {
		est.PartsAvailability = servicecase.AvailabilityMedium
	}

	customer := data.Customer
	if customer.Tier == "" {
		customer.Tier = servicecase.TierStandard
	}

	original := data.Specs.OriginalPrice
	if original <= 0 {
		original = s.catalog.OriginalPrice(rec.Category())
	}
	value := original * math.Pow(1-depreciationRate, float64(age))
	value = math.Max(value, original*residualShare)

	var ceiling float64
	if age > strategicAgeThreshold {
		ceiling = core.Clamp(value*ceilingValueShare, strategicCeilingFloor, strategicCeilingCap)
	} else {
		ceiling = math.Min(value*ceilingValueShare, standardCeilingCap)
	}

	return servicecase.EnrichmentPatch{Outputs: servicecase.EnrichmentOutputs{
		RepairCost:            est.TotalCost,
		SparePartAvailability: est.PartsAvailability,
		Customer:              customer,
		Specs: servicecase.SpecSnapshot{
			OriginalPrice:      original,
			CurrentMarketValue: value,
			EnergyRating:       data.Specs.EnergyRating,
			WarrantyRemaining:  core.NonNegative(data.Specs.WarrantyRemaining),
		},
		CostCeiling: ceiling,
		Estimate:    est,
	}}
}
