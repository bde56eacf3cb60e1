package rules

import (
	"strings"
	"testing"

	"caseflow/domain/rules"
	"caseflow/domain/servicecase"
	"caseflow/internal/errors"
)

func mustEngine(t *testing.T, set rules.RuleSet) *Engine {
	t.Helper()
	engine, err := NewEngine(set)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func caseWith(inputs servicecase.CaseInputs) servicecase.CaseRecord {
	return servicecase.NewCaseRecord(inputs)
}

func TestNewEngineRejectsBadConfigs(t *testing.T) {
	valid := rules.Rule{
		Name:   "ok",
		Action: rules.ActionRecommendRepair,
		Weight: 10,
		Conditions: []rules.Condition{
			{Field: "age", Operator: rules.OpGTE, Value: 1},
		},
	}

	tests := []struct {
		name string
		set  rules.RuleSet
	}{
		{
			name: "empty rule set",
			set:  rules.RuleSet{},
		},
		{
			name: "unknown field",
			set: rules.RuleSet{Groups: []rules.Group{{Name: "g", Rules: []rules.Rule{{
				Name: "r", Action: rules.ActionRecommendRepair, Weight: 10,
				Conditions: []rules.Condition{{Field: "no_such_field", Operator: rules.OpEquals, Value: 1}},
			}}}}},
		},
		{
			name: "numeric operator on string field",
			set: rules.RuleSet{Groups: []rules.Group{{Name: "g", Rules: []rules.Rule{{
				Name: "r", Action: rules.ActionRecommendRepair, Weight: 10,
				Conditions: []rules.Condition{{Field: "brand", Operator: rules.OpGT, Value: 3}},
			}}}}},
		},
		{
			name: "unknown action",
			set: rules.RuleSet{Groups: []rules.Group{{Name: "g", Rules: []rules.Rule{{
				Name: "r", Action: "recommend_shrug", Weight: 10,
				Conditions: valid.Conditions,
			}}}}},
		},
		{
			name: "no conditions",
			set: rules.RuleSet{Groups: []rules.Group{{Name: "g", Rules: []rules.Rule{{
				Name: "r", Action: rules.ActionRecommendRepair, Weight: 10,
			}}}}},
		},
		{
			name: "zero weight without override",
			set: rules.RuleSet{Groups: []rules.Group{{Name: "g", Rules: []rules.Rule{{
				Name: "r", Action: rules.ActionRecommendRepair,
				Conditions: valid.Conditions,
			}}}}},
		},
		{
			name: "unknown value_field",
			set: rules.RuleSet{Groups: []rules.Group{{Name: "g", Rules: []rules.Rule{{
				Name: "r", Action: rules.ActionRecommendRepair, Weight: 10,
				Conditions: []rules.Condition{{Field: "repair_cost", Operator: rules.OpGT, ValueField: "bogus"}},
			}}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.set)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if errors.GetCode(err) != errors.CodeRuleInvalid {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.CodeRuleInvalid)
			}
		})
	}
}

func TestEvaluateOverrideShortCircuits(t *testing.T) {
	engine, err := DefaultEngine()
	if err != nil {
		t.Fatalf("DefaultEngine: %v", err)
	}

	rec := caseWith(servicecase.CaseInputs{
		DeviceType: "dishwasher", Brand: "V-Zug", Age: 5,
		ErrorDescription: "smoke coming from the control panel",
	})
	out := engine.Evaluate(rec)

	if !out.OverrideApplied {
		t.Fatal("expected an override")
	}
	if out.Recommendation != rules.CategoryManufacturer {
		t.Errorf("recommendation = %q, want manufacturer", out.Recommendation)
	}
	if out.Confidence != 1.0 {
		t.Errorf("confidence = %.2f, want 1.0", out.Confidence)
	}
	// The safety group is scanned first; the short-circuit means no later
	// group ever appears in the evaluation log.
	if len(out.EvaluatedGroups) != 1 || out.EvaluatedGroups[0] != "safety_rules" {
		t.Errorf("evaluated groups = %v, want [safety_rules]", out.EvaluatedGroups)
	}
}

func TestEvaluateWeightedTally(t *testing.T) {
	engine := mustEngine(t, rules.RuleSet{Groups: []rules.Group{{
		Name: "g", Priority: 1,
		Rules: []rules.Rule{
			{
				Name: "old_device", Action: rules.ActionRecommendReplace, Weight: 30,
				Reasoning:  "old device",
				Conditions: []rules.Condition{{Field: "age", Operator: rules.OpGTE, Value: 10}},
			},
			{
				Name: "premium_brand", Action: rules.ActionRecommendRepair, Weight: 20,
				Reasoning:  "premium brand",
				Conditions: []rules.Condition{{Field: "brand", Operator: rules.OpEquals, Value: "V-Zug"}},
			},
		},
	}}})

	out := engine.Evaluate(caseWith(servicecase.CaseInputs{
		DeviceType: "cooktop", Brand: "V-Zug", Age: 12, ErrorDescription: "worn out",
	}))

	if out.Recommendation != rules.CategoryReplace {
		t.Errorf("recommendation = %q, want replace", out.Recommendation)
	}
	if out.Confidence != 0.6 {
		t.Errorf("confidence = %.3f, want 0.6", out.Confidence)
	}
	if len(out.AppliedRules) != 2 {
		t.Errorf("applied rules = %d, want 2", len(out.AppliedRules))
	}
	if out.Tally[rules.CategoryReplace] != 30 || out.Tally[rules.CategoryRepair] != 20 {
		t.Errorf("tally = %v", out.Tally)
	}
}

func TestEvaluateTieBreakIsFixedOrder(t *testing.T) {
	engine := mustEngine(t, rules.RuleSet{Groups: []rules.Group{{
		Name: "g", Priority: 1,
		Rules: []rules.Rule{
			{
				Name: "a", Action: rules.ActionRecommendReplace, Weight: 25,
				Conditions: []rules.Condition{{Field: "age", Operator: rules.OpGTE, Value: 1}},
			},
			{
				Name: "b", Action: rules.ActionRecommendRepair, Weight: 25,
				Conditions: []rules.Condition{{Field: "age", Operator: rules.OpGTE, Value: 1}},
			},
		},
	}}})

	out := engine.Evaluate(caseWith(servicecase.CaseInputs{
		DeviceType: "oven", Brand: "Siemens", Age: 5, ErrorDescription: "x",
	}))
	if out.Recommendation != rules.CategoryRepair {
		t.Errorf("tie went to %q, want repair", out.Recommendation)
	}
}

func TestEvaluateMissingFieldNeverErrors(t *testing.T) {
	engine := mustEngine(t, rules.RuleSet{Groups: []rules.Group{{
		Name: "g", Priority: 1,
		Rules: []rules.Rule{{
			Name: "needs_technical", Action: rules.ActionRecommendReplace, Weight: 20,
			Conditions: []rules.Condition{{Field: "repair_probability", Operator: rules.OpLT, Value: 0.6}},
		}},
	}}})

	// No technical stage output on the record: the condition is false and the
	// default recommendation applies.
	out := engine.Evaluate(caseWith(servicecase.CaseInputs{
		DeviceType: "oven", Brand: "Siemens", Age: 5, ErrorDescription: "x",
	}))

	if out.Recommendation != rules.CategoryRepair {
		t.Errorf("recommendation = %q, want default repair", out.Recommendation)
	}
	if out.Confidence != 0.5 {
		t.Errorf("confidence = %.2f, want 0.5", out.Confidence)
	}
	found := false
	for _, line := range out.ReasoningChain {
		if strings.Contains(line, "No specific rules matched") {
			found = true
		}
	}
	if !found {
		t.Errorf("reasoning chain %v lacks the default explanation", out.ReasoningChain)
	}
}

func TestEvaluateValueFieldComparison(t *testing.T) {
	engine := mustEngine(t, rules.RuleSet{Groups: []rules.Group{{
		Name: "g", Priority: 1,
		Rules: []rules.Rule{{
			Name: "cost_over_ceiling", Action: rules.ActionRecommendReplace, Weight: 30,
			Conditions: []rules.Condition{{Field: "repair_cost", Operator: rules.OpGT, ValueField: "cost_ceiling"}},
		}},
	}}})

	rec := caseWith(servicecase.CaseInputs{
		DeviceType: "cooktop", Brand: "V-Zug", Age: 5, ErrorDescription: "x",
	})
	rec = rec.ApplyEnrichment(servicecase.EnrichmentPatch{Outputs: servicecase.EnrichmentOutputs{
		RepairCost: 900, CostCeiling: 800,
	}})

	out := engine.Evaluate(rec)
	if out.Recommendation != rules.CategoryReplace {
		t.Errorf("recommendation = %q, want replace", out.Recommendation)
	}

	rec = rec.ApplyEnrichment(servicecase.EnrichmentPatch{Outputs: servicecase.EnrichmentOutputs{
		RepairCost: 500, CostCeiling: 800,
	}})
	out = engine.Evaluate(rec)
	if out.Recommendation != rules.CategoryRepair {
		t.Errorf("recommendation = %q, want default repair", out.Recommendation)
	}
}

func TestEvaluateContainsSemantics(t *testing.T) {
	newContainsEngine := func(matchAny bool) *Engine {
		return mustEngine(t, rules.RuleSet{Groups: []rules.Group{{
			Name: "g", Priority: 1,
			Rules: []rules.Rule{{
				Name: "kw", Action: rules.ActionManualReview, Weight: 10,
				Conditions: []rules.Condition{{
					Field:    "error_description",
					Operator: rules.OpContains,
					Value:    []interface{}{"pump", "leak"},
					MatchAny: matchAny,
				}},
			}},
		}}})
	}

	rec := caseWith(servicecase.CaseInputs{
		DeviceType: "dishwasher", Brand: "V-Zug", Age: 5, ErrorDescription: "loud pump noise",
	})

	if out := newContainsEngine(true).Evaluate(rec); out.Recommendation != rules.CategoryManual {
		t.Errorf("match_any: recommendation = %q, want manual", out.Recommendation)
	}
	// match_all requires both keywords; "leak" is absent.
	if out := newContainsEngine(false).Evaluate(rec); out.Recommendation != rules.CategoryRepair {
		t.Errorf("match_all: recommendation = %q, want default repair", out.Recommendation)
	}
}

func TestEvaluateListMembership(t *testing.T) {
	engine := mustEngine(t, rules.RuleSet{Groups: []rules.Group{{
		Name: "g", Priority: 1,
		Rules: []rules.Rule{{
			Name: "loyal_brand", Action: rules.ActionRecommendRepair, Weight: 15,
			Conditions: []rules.Condition{{
				Field:    "preferred_brands",
				Operator: rules.OpContains,
				Value:    "miele",
			}},
		}},
	}}})

	rec := caseWith(servicecase.CaseInputs{
		DeviceType: "cooktop", Brand: "Miele", Age: 4, ErrorDescription: "x",
	})
	rec = rec.ApplyEnrichment(servicecase.EnrichmentPatch{Outputs: servicecase.EnrichmentOutputs{
		Customer: servicecase.CustomerProfile{PreferredBrands: []string{"V-Zug", "Miele"}},
	}})

	out := engine.Evaluate(rec)
	if len(out.AppliedRules) != 1 {
		t.Fatalf("applied rules = %d, want 1 (case-insensitive membership)", len(out.AppliedRules))
	}
}
