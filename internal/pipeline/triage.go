package pipeline

import (
	"fmt"
	"strings"

	"caseflow/domain/servicecase"
)

// Safety phrases that force an immediate manufacturer escalation.
var safetyKeywords = []string{"smoke", "fire", "burning", "electric shock", "gas leak"}

// Categories whose very young devices are the manufacturer's responsibility.
var manufacturerCategories = map[string]bool{
	"oven":         true,
	"refrigerator": true,
}

const replacementFocusAge = 15

// Triage validates the required inputs and routes the case. Rules are
// ordered and first-match-wins: safety, young warranty device, end-of-life
// device, then the normal path.
func (s *Stages) Triage(rec servicecase.CaseRecord) servicecase.TriagePatch {
	if !rec.Inputs.Complete() {
		return servicecase.TriagePatch{Decision: servicecase.TriageDecision{
			Status:    servicecase.TriageIncomplete,
			Route:     servicecase.RouteManualReview,
			Reasoning: "Missing mandatory field information",
		}}
	}

	fault := rec.FaultText()
	for _, kw := range safetyKeywords {
		if strings.Contains(fault, kw) {
			return servicecase.TriagePatch{Decision: servicecase.TriageDecision{
				Status:    servicecase.TriageComplete,
				Route:     servicecase.RouteUrgentManufacturer,
				Reasoning: "Safety concern detected - requires immediate manufacturer attention",
			}}
		}
	}

	age := rec.Inputs.Age
	if age <= 1 && manufacturerCategories[rec.Category()] {
		return servicecase.TriagePatch{Decision: servicecase.TriageDecision{
			Status:    servicecase.TriageComplete,
			Route:     servicecase.RouteManufacturer,
			Reasoning: fmt.Sprintf("Device age %d year(s) - likely under manufacturer warranty", age),
		}}
	}

	if age >= replacementFocusAge {
		return servicecase.TriagePatch{Decision: servicecase.TriageDecision{
			Status:    servicecase.TriageComplete,
			Route:     servicecase.RouteReplacementFocus,
			Reasoning: fmt.Sprintf("Device age %d years exceeds typical lifespan", age),
		}}
	}

	return servicecase.TriagePatch{Decision: servicecase.TriageDecision{
		Status:    servicecase.TriageComplete,
		Route:     servicecase.RouteNormal,
		Reasoning: "Standard service case - proceeding with full analysis",
	}}
}
