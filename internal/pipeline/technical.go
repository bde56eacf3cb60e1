package pipeline

import (
	"math"
	"strings"

	"caseflow/domain/core"
	"caseflow/domain/servicecase"
)

var (
	electricalKeywords = []string{"power", "display", "electric", "electronic", "circuit", "control"}
	mechanicalKeywords = []string{"leak", "pump", "door", "seal", "heating", "noise", "vibration"}
)

const defaultSuccessRate = 0.75

// AnalyzeTechnical evaluates repair feasibility: warranty status, damage
// family, success probability and complexity. The probability-derived
// complexity overwrites the keyword-derived one on purpose.
func (s *Stages) AnalyzeTechnical(rec servicecase.CaseRecord) servicecase.TechnicalPatch {
	age := rec.Inputs.Age
	fault := rec.FaultText()

	warranty := servicecase.OutOfWarranty
	if age <= s.catalog.WarrantyYears(rec.Category(), rec.Inputs.Brand) {
		warranty = servicecase.UnderWarranty
	}

	damage := servicecase.DamageUnknown
	if containsAny(fault, electricalKeywords) {
		damage = servicecase.DamageElectrical
	} else if containsAny(fault, mechanicalKeywords) {
		damage = servicecase.DamageMechanical
	}

	probability := defaultSuccessRate
	matched := ""
	if sig, ok := s.catalog.MatchError(rec.Category(), rec.Inputs.Brand, fault); ok {
		probability = sig.SuccessRate
		matched = sig.Code
	}

	ageFactor := 1.0
	if age > 5 {
		ageFactor = math.Max(0.5, 1-float64(age-5)*0.05)
	}
	probability = core.Clamp01(probability * ageFactor)

	var complexity servicecase.Complexity
	var timeline string
	switch {
	case probability > 0.9:
		complexity = servicecase.ComplexityLow
		timeline = "1-2 days"
	case probability > 0.7:
		complexity = servicecase.ComplexityMedium
		timeline = "3-5 days"
	default:
		complexity = servicecase.ComplexityHigh
		timeline = "1-2 weeks"
	}

	expertise := "standard"
	if complexity == servicecase.ComplexityHigh {
		expertise = "specialist"
	}
	partsComplexity := "electronic"
	if damage == servicecase.DamageMechanical {
		partsComplexity = "standard"
	}
	risk := "medium"
	if probability > 0.8 {
		risk = "low"
	}

	return servicecase.TechnicalPatch{Outputs: servicecase.TechnicalOutputs{
		WarrantyStatus:       warranty,
		DamageClassification: damage,
		RepairProbability:    probability,
		RepairComplexity:     complexity,
		Detail: servicecase.TechnicalDetail{
			MatchedPattern:    matched,
			AgeImpactFactor:   ageFactor,
			EstimatedTimeline: timeline,
			RequiredExpertise: expertise,
			PartsComplexity:   partsComplexity,
			RiskAssessment:    risk,
		},
	}}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
