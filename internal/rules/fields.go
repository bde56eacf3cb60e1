package rules

import (
	"caseflow/domain/rules"
	"caseflow/domain/servicecase"
)

// fieldKind constrains which operators a condition may apply to a field.
type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindList
)

// accessor extracts a field value from the case record. ok is false when the
// owning stage has not produced its output yet; conditions on such fields
// evaluate to false rather than erroring.
type accessor func(rec servicecase.CaseRecord) (interface{}, bool)

type fieldSpec struct {
	kind fieldKind
	get  accessor
}

// fieldRegistry is the closed set of case fields rule conditions may
// reference. Unknown fields are rejected at load time, not at evaluation
// time.
var fieldRegistry = map[string]fieldSpec{
	"device_type": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		return r.Category(), true
	}},
	"brand": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		return r.Inputs.Brand, true
	}},
	"age": {kindNumber, func(r servicecase.CaseRecord) (interface{}, bool) {
		return float64(r.Inputs.Age), true
	}},
	"error_description": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		return r.FaultText(), true
	}},
	"triage_route": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Triage == nil {
			return nil, false
		}
		return string(r.Triage.Route), true
	}},
	"repair_cost": {kindNumber, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Enrichment == nil {
			return nil, false
		}
		return r.Enrichment.RepairCost, true
	}},
	"cost_ceiling": {kindNumber, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Enrichment == nil {
			return nil, false
		}
		return r.Enrichment.CostCeiling, true
	}},
	"market_value": {kindNumber, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Enrichment == nil {
			return nil, false
		}
		return r.Enrichment.Specs.CurrentMarketValue, true
	}},
	"spare_part_availability": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Enrichment == nil {
			return nil, false
		}
		return string(r.Enrichment.SparePartAvailability), true
	}},
	"customer_tier": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Enrichment == nil {
			return nil, false
		}
		return string(r.Enrichment.Customer.Tier), true
	}},
	"preferred_brands": {kindList, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Enrichment == nil {
			return nil, false
		}
		return r.Enrichment.Customer.PreferredBrands, true
	}},
	"warranty_status": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Technical == nil {
			return nil, false
		}
		return string(r.Technical.WarrantyStatus), true
	}},
	"damage_classification": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Technical == nil {
			return nil, false
		}
		return string(r.Technical.DamageClassification), true
	}},
	"repair_probability": {kindNumber, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Technical == nil {
			return nil, false
		}
		return r.Technical.RepairProbability, true
	}},
	"repair_complexity": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Technical == nil {
			return nil, false
		}
		return string(r.Technical.RepairComplexity), true
	}},
	"economic_viability": {kindString, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Economic == nil {
			return nil, false
		}
		return string(r.Economic.Viability), true
	}},
	"economic_score": {kindNumber, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Economic == nil {
			return nil, false
		}
		return r.Economic.Score, true
	}},
	"replacement_margin": {kindNumber, func(r servicecase.CaseRecord) (interface{}, bool) {
		if r.Economic == nil {
			return nil, false
		}
		return r.Economic.Margin.BestReplacementMargin, true
	}},
}

// allowedOperators maps each field kind to the operators that are meaningful
// for it.
var allowedOperators = map[fieldKind]map[rules.Operator]bool{
	kindString: {
		rules.OpEquals:    true,
		rules.OpContains:  true,
		rules.OpInList:    true,
		rules.OpNotInList: true,
	},
	kindNumber: {
		rules.OpEquals: true,
		rules.OpGT:     true,
		rules.OpLT:     true,
		rules.OpGTE:    true,
		rules.OpLTE:    true,
	},
	kindList: {
		rules.OpContains: true,
	},
}
