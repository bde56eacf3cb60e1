package pipeline

import (
	"fmt"
	"sort"

	"caseflow/domain/catalog"
	"caseflow/domain/core"
	"caseflow/domain/servicecase"
)

// Weighted scoring factors. Factors are independent and additive: each
// contributes only when its predicate holds.
const (
	weightWithinCeiling  = 40
	weightLowCostRatio   = 25
	weightMidCostRatio   = 10
	weightGoldTier       = 15
	weightSilverTier     = 10
	weightSustainability = 10
	weightYoungDevice    = 10
	repairScoreThreshold = 60
	sustainabilityMaxAge = 8
	typicalLifespanYears = 15
)

// AnalyzeEconomic scores repair viability 0-100 and builds the replacement
// margin table for the category.
func (s *Stages) AnalyzeEconomic(rec servicecase.CaseRecord, candidates []catalog.Product) servicecase.EconomicPatch {
	var (
		repairCost float64
		ceiling    float64
		value      float64
		tier       servicecase.CustomerTier
	)
	if rec.Enrichment != nil {
		repairCost = rec.Enrichment.RepairCost
		ceiling = rec.Enrichment.CostCeiling
		value = rec.Enrichment.Specs.CurrentMarketValue
		tier = rec.Enrichment.Customer.Tier
	}
	age := rec.Inputs.Age

	roi := 0.0
	if repairCost > 0 {
		roi = (value - repairCost) / repairCost
	}

	table := marginTable(candidates)
	bestMargin := 0.0
	if len(table) > 0 {
		bestMargin = table[0].Margin
	}

	ratio := 1.0
	if value > 0 {
		ratio = repairCost / value
	}

	score := 0.0
	points := make([]string, 0, 5)

	if repairCost <= ceiling {
		score += weightWithinCeiling
		points = append(points, fmt.Sprintf("Repair cost (%.0f CHF) within ceiling (%.0f CHF)", repairCost, ceiling))
	} else {
		points = append(points, fmt.Sprintf("Repair cost (%.0f CHF) exceeds ceiling (%.0f CHF)", repairCost, ceiling))
	}

	switch {
	case ratio < 0.5:
		score += weightLowCostRatio
		points = append(points, "Repair cost is reasonable relative to device value")
	case ratio < 0.8:
		score += weightMidCostRatio
		points = append(points, "Repair cost is acceptable relative to device value")
	default:
		points = append(points, "Repair cost is high relative to device value")
	}

	switch tier {
	case servicecase.TierGold:
		score += weightGoldTier
		points = append(points, "Premium customer - prioritize satisfaction")
	case servicecase.TierSilver:
		score += weightSilverTier
	}

	if age < sustainabilityMaxAge {
		score += weightSustainability
		points = append(points, "Environmental benefit from repair")
	}

	if float64(age)/typicalLifespanYears < 0.5 {
		score += weightYoungDevice
		points = append(points, "Device is relatively new")
	}

	score = core.Clamp(score, 0, 100)

	viability := servicecase.ViabilityReplace
	reasoning := fmt.Sprintf("Economic analysis favors replacement (margin opportunity: %.0f CHF)", bestMargin)
	if score >= repairScoreThreshold {
		viability = servicecase.ViabilityRepair
		reasoning = "Economic analysis favors repair"
	}

	return servicecase.EconomicPatch{Outputs: servicecase.EconomicOutputs{
		Viability:       viability,
		Score:           score,
		Reasoning:       reasoning,
		ReasoningPoints: points,
		Margin: servicecase.MarginAnalysis{
			RepairROI:             roi,
			BestReplacementMargin: bestMargin,
			CostRatio:             ratio,
			Table:                 table,
		},
	}}
}

// marginTable computes per-candidate margin percentages sorted descending.
func marginTable(candidates []catalog.Product) []servicecase.MarginEntry {
	table := make([]servicecase.MarginEntry, 0, len(candidates))
	for _, p := range candidates {
		if p.Price <= 0 {
			continue
		}
		table = append(table, servicecase.MarginEntry{
			Model:     p.Model,
			Price:     p.Price,
			Margin:    p.Margin,
			MarginPct: p.Margin / p.Price * 100,
		})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].MarginPct > table[j].MarginPct
	})
	return table
}
