package pipeline

import (
	"fmt"
	"strings"

	"caseflow/domain/catalog"
	"caseflow/domain/core"
	"caseflow/domain/servicecase"
	"caseflow/internal/ranking"
)

const (
	confidenceCap      = 0.95
	lowProbabilityBar  = 0.6
	highProbabilityBar = 0.9
	economicWeight     = 0.6
	technicalWeight    = 0.4
)

// Synthesize joins the technical and economic verdicts into the final
// recommendation, applying the two hard overrides and building the
// recommendation artifact (repair order or ranked offers).
func (s *Stages) Synthesize(rec servicecase.CaseRecord, candidates []catalog.Product) servicecase.FinalPatch {
	var (
		probability float64
		econScore   float64
		viability   servicecase.Viability
		tier        servicecase.CustomerTier
	)
	if rec.Technical != nil {
		probability = rec.Technical.RepairProbability
	}
	if rec.Economic != nil {
		econScore = rec.Economic.Score
		viability = rec.Economic.Viability
	}
	if rec.Enrichment != nil {
		tier = rec.Enrichment.Customer.Tier
	}

	recommendation := servicecase.RecommendReplace
	if viability == servicecase.ViabilityRepair {
		recommendation = servicecase.RecommendRepair
	}

	// Overrides are checked in a fixed order; the low-probability guard wins
	// over the premium-customer fast path.
	overrideApplied := false
	overrideReason := ""
	switch {
	case probability < lowProbabilityBar:
		recommendation = servicecase.RecommendReplace
		overrideApplied = true
		overrideReason = "Low technical success probability"
	case probability > highProbabilityBar && tier == servicecase.TierGold:
		recommendation = servicecase.RecommendRepair
		overrideApplied = true
		overrideReason = "High success probability with premium customer"
	}

	confidence := (econScore*economicWeight + probability*100*technicalWeight) / 100
	confidence = core.Clamp(confidence, 0, confidenceCap)

	patch := servicecase.FinalPatch{Outputs: servicecase.FinalOutputs{
		Recommendation: recommendation,
		Confidence:     confidence,
	}}

	if recommendation == servicecase.RecommendRepair {
		patch.Outputs.Justification = s.repairJustification(rec, overrideReason)
		order := s.buildRepairOrder(rec)
		patch.Outputs.RepairOrder = &order
	} else {
		offers := s.rankReplacements(rec, candidates)
		patch.Outputs.ReplacementOptions = offers
		patch.Outputs.Justification = s.replaceJustification(rec, offers, overrideReason)
	}

	patch.Outputs.Trace = servicecase.DecisionTrace{
		Final: servicecase.TraceFinal{
			Confidence:      confidence,
			OverrideApplied: overrideApplied,
			OverrideReason:  overrideReason,
		},
	}
	return patch
}

func (s *Stages) repairJustification(rec servicecase.CaseRecord, overrideReason string) string {
	parts := make([]string, 0, 4)
	if rec.Technical != nil {
		parts = append(parts, fmt.Sprintf("Technical Analysis: %.0f%% success probability", rec.Technical.RepairProbability*100))
	}
	if rec.Economic != nil {
		parts = append(parts, fmt.Sprintf("Economic Analysis: Score %.0f/100", rec.Economic.Score))
	}
	if rec.Enrichment != nil {
		parts = append(parts, fmt.Sprintf("Customer: %s tier", rec.Enrichment.Customer.Tier))
	}
	if overrideReason != "" {
		parts = append(parts, "Override: "+overrideReason)
	}
	return strings.Join(parts, " | ")
}

func (s *Stages) replaceJustification(rec servicecase.CaseRecord, offers []servicecase.ReplacementOffer, overrideReason string) string {
	parts := make([]string, 0, 4)
	if len(offers) > 0 {
		parts = append(parts, fmt.Sprintf("Value Proposition: %s %s at %.0f CHF", offers[0].Product.Brand, offers[0].Product.Model, offers[0].Product.Price))
	}
	if rec.Economic != nil {
		parts = append(parts, fmt.Sprintf("Margin Opportunity: %.0f CHF", rec.Economic.Margin.BestReplacementMargin))
	}
	if rec.Technical != nil && rec.Technical.RepairProbability < lowProbabilityBar {
		parts = append(parts, fmt.Sprintf("Technical Risk: repair success only %.0f%%", rec.Technical.RepairProbability*100))
	}
	if overrideReason != "" {
		parts = append(parts, "Override: "+overrideReason)
	}
	if len(parts) == 0 {
		return "Replacement recommended based on combined analysis"
	}
	return strings.Join(parts, " | ")
}

// buildRepairOrder assembles the repair artifact from the enrichment quote
// and the technical findings.
func (s *Stages) buildRepairOrder(rec servicecase.CaseRecord) servicecase.RepairOrder {
	order := servicecase.RepairOrder{
		OrderID: core.OrderID(core.NewID()),
		Device: servicecase.DeviceInfo{
			Type:             rec.Inputs.DeviceType,
			Brand:            rec.Inputs.Brand,
			Age:              rec.Inputs.Age,
			ErrorDescription: rec.Inputs.ErrorDescription,
		},
		Priority:  "normal",
		Status:    "created",
		CreatedAt: s.now(),
	}
	if strings.Contains(rec.FaultText(), "urgent") {
		order.Priority = "high"
	}
	if rec.Enrichment != nil {
		order.Costs = servicecase.CostBreakdown{
			PartsCost: rec.Enrichment.Estimate.PartsCost,
			LaborCost: rec.Enrichment.Estimate.LaborCost,
			TotalCost: rec.Enrichment.Estimate.TotalCost,
		}
		order.Timeline.TechnicianAvailability = rec.Enrichment.Estimate.TechnicianAvailability
	}
	order.Timeline.PartsDelivery = "2-3 days"
	if rec.Technical != nil {
		order.Timeline.EstimatedDuration = rec.Technical.Detail.EstimatedTimeline
		order.SkillRequired = rec.Technical.Detail.RequiredExpertise
		order.Warranty = servicecase.WarrantyTerms{
			Status:         rec.Technical.WarrantyStatus,
			RepairWarranty: "6 months",
			Coverage:       "parts and labor",
		}
	}
	return order
}

func (s *Stages) rankReplacements(rec servicecase.CaseRecord, candidates []catalog.Product) []servicecase.ReplacementOffer {
	req := ranking.Request{
		Category:   rec.Category(),
		DeviceAge:  rec.Inputs.Age,
		Candidates: candidates,
	}
	if rec.Enrichment != nil {
		req.CostCeiling = rec.Enrichment.CostCeiling
		req.PreferredBrands = rec.Enrichment.Customer.PreferredBrands
	}
	return s.ranker.Rank(req)
}
