package rules

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"caseflow/domain/rules"
	"caseflow/domain/servicecase"
	"caseflow/internal/errors"
)

const defaultConfidence = 0.5

var validActions = map[rules.Action]bool{
	rules.ActionRecommendRepair:   true,
	rules.ActionRecommendReplace:  true,
	rules.ActionReferManufacturer: true,
	rules.ActionManualReview:      true,
	rules.ActionEscalate:          true,
}

// Engine evaluates a validated rule set against case records. It is immutable
// after construction and safe for concurrent use.
type Engine struct {
	version string
	groups  []rules.Group
}

// NewEngine validates the rule set and returns an evaluator for it. Every
// field reference and operator is checked here so Evaluate can never fail.
func NewEngine(set rules.RuleSet) (*Engine, error) {
	if len(set.Groups) == 0 {
		return nil, errors.RuleInvalid("rule set has no rule groups")
	}
	for _, g := range set.Groups {
		if g.Name == "" {
			return nil, errors.RuleInvalid("rule group without a name")
		}
		for _, r := range g.Rules {
			if r.Name == "" {
				return nil, errors.RuleInvalid(fmt.Sprintf("group %q contains an unnamed rule", g.Name))
			}
			if !validActions[r.Action] {
				return nil, errors.RuleInvalid(fmt.Sprintf("rule %q has unknown action %q", r.Name, r.Action))
			}
			if len(r.Conditions) == 0 {
				return nil, errors.RuleInvalid(fmt.Sprintf("rule %q has no conditions", r.Name))
			}
			if !r.Override && r.Weight <= 0 {
				return nil, errors.RuleInvalid(fmt.Sprintf("rule %q needs a positive weight or the override flag", r.Name))
			}
			for _, c := range r.Conditions {
				if err := validateCondition(r.Name, c); err != nil {
					return nil, err
				}
			}
		}
	}

	groups := make([]rules.Group, len(set.Groups))
	copy(groups, set.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Priority < groups[j].Priority
	})
	return &Engine{version: set.Version, groups: groups}, nil
}

func validateCondition(ruleName string, c rules.Condition) error {
	spec, ok := fieldRegistry[c.Field]
	if !ok {
		return errors.RuleInvalid(fmt.Sprintf("rule %q references unknown field %q", ruleName, c.Field))
	}
	if !allowedOperators[spec.kind][c.Operator] {
		return errors.RuleInvalid(fmt.Sprintf("rule %q applies operator %q to field %q", ruleName, c.Operator, c.Field))
	}
	if c.ValueField != "" {
		if _, ok := fieldRegistry[c.ValueField]; !ok {
			return errors.RuleInvalid(fmt.Sprintf("rule %q references unknown value field %q", ruleName, c.ValueField))
		}
	} else if c.Value == nil {
		return errors.RuleInvalid(fmt.Sprintf("rule %q has a condition with neither value nor value_field", ruleName))
	}
	return nil
}

// Version returns the loaded rule set version.
func (e *Engine) Version() string { return e.version }

// Groups returns the groups in evaluation order.
func (e *Engine) Groups() []rules.Group { return e.groups }

// Evaluate runs every group in priority order and tallies matched rule
// weights per recommendation bucket. A matched override rule stops the scan
// immediately with full confidence.
func (e *Engine) Evaluate(rec servicecase.CaseRecord) rules.Outcome {
	out := rules.Outcome{
		Tally:           make(map[rules.Category]float64),
		AppliedRules:    []rules.AppliedRule{},
		ReasoningChain:  []string{},
		EvaluatedGroups: []string{},
	}

	for _, g := range e.groups {
		out.EvaluatedGroups = append(out.EvaluatedGroups, g.Name)
		for _, r := range g.Rules {
			if !e.matches(rec, r) {
				continue
			}
			applied := rules.AppliedRule{
				Group:     g.Name,
				Rule:      r.Name,
				Action:    r.Action,
				Reasoning: r.Reasoning,
				Weight:    r.Weight,
				Override:  r.Override,
			}
			out.AppliedRules = append(out.AppliedRules, applied)
			out.ReasoningChain = append(out.ReasoningChain, fmt.Sprintf("[%s] %s: %s", g.Name, r.Name, r.Reasoning))

			if r.Override {
				out.Recommendation = r.Action.ToCategory()
				out.Confidence = 1.0
				out.OverrideApplied = true
				return out
			}
			out.Tally[r.Action.ToCategory()] += r.Weight
		}
	}

	total := 0.0
	for _, w := range out.Tally {
		total += w
	}
	if total == 0 {
		out.Recommendation = rules.CategoryRepair
		out.Confidence = defaultConfidence
		out.ReasoningChain = append(out.ReasoningChain, "No specific rules matched - using default recommendation")
		return out
	}

	// Fixed-order scan makes the tie-break deterministic.
	best := rules.CategoryRepair
	bestWeight := -1.0
	for _, cat := range rules.Categories() {
		if w := out.Tally[cat]; w > bestWeight {
			best = cat
			bestWeight = w
		}
	}
	out.Recommendation = best
	out.Confidence = bestWeight / total
	return out
}

func (e *Engine) matches(rec servicecase.CaseRecord, r rules.Rule) bool {
	for _, c := range r.Conditions {
		if !e.evalCondition(rec, c) {
			return false
		}
	}
	return true
}

// evalCondition never errors: a missing field, missing comparand or type
// mismatch simply fails the condition.
func (e *Engine) evalCondition(rec servicecase.CaseRecord, c rules.Condition) bool {
	spec := fieldRegistry[c.Field]
	fieldVal, ok := spec.get(rec)
	if !ok {
		return false
	}

	compare := c.Value
	if c.ValueField != "" {
		ref, refOK := fieldRegistry[c.ValueField].get(rec)
		if !refOK {
			return false
		}
		compare = ref
	}

	switch spec.kind {
	case kindNumber:
		return evalNumber(fieldVal, c.Operator, compare)
	case kindString:
		return evalString(fieldVal.(string), c, compare)
	case kindList:
		return evalList(fieldVal.([]string), c, compare)
	}
	return false
}

func evalNumber(fieldVal interface{}, op rules.Operator, compare interface{}) bool {
	lhs, ok := toFloat(fieldVal)
	if !ok {
		return false
	}
	rhs, ok := toFloat(compare)
	if !ok {
		return false
	}
	switch op {
	case rules.OpEquals:
		return lhs == rhs
	case rules.OpGT:
		return lhs > rhs
	case rules.OpLT:
		return lhs < rhs
	case rules.OpGTE:
		return lhs >= rhs
	case rules.OpLTE:
		return lhs <= rhs
	}
	return false
}

func evalString(fieldVal string, c rules.Condition, compare interface{}) bool {
	switch c.Operator {
	case rules.OpEquals:
		s, ok := compare.(string)
		return ok && strings.EqualFold(fieldVal, s)
	case rules.OpContains:
		return containsMatch(fieldVal, c, compare)
	case rules.OpInList:
		return inList(fieldVal, compare)
	case rules.OpNotInList:
		return !inList(fieldVal, compare)
	}
	return false
}

// containsMatch handles both a single needle and a list of needles. With a
// list, MatchAny selects OR semantics; the default requires every needle.
func containsMatch(fieldVal string, c rules.Condition, compare interface{}) bool {
	haystack := strings.ToLower(fieldVal)
	needles, ok := toStringSlice(compare)
	if !ok {
		s, sok := compare.(string)
		if !sok {
			return false
		}
		needles = []string{s}
	}
	if len(needles) == 0 {
		return false
	}
	for _, n := range needles {
		found := strings.Contains(haystack, strings.ToLower(n))
		if c.MatchAny && found {
			return true
		}
		if !c.MatchAny && !found {
			return false
		}
	}
	return !c.MatchAny
}

// evalList tests membership of the comparand inside a list-valued field.
func evalList(fieldVal []string, c rules.Condition, compare interface{}) bool {
	if c.Operator != rules.OpContains {
		return false
	}
	needle, ok := compare.(string)
	if !ok {
		return false
	}
	for _, v := range fieldVal {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}

func inList(fieldVal string, compare interface{}) bool {
	list, ok := toStringSlice(compare)
	if !ok {
		return false
	}
	for _, v := range list {
		if strings.EqualFold(fieldVal, v) {
			return true
		}
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toStringSlice(v interface{}) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
