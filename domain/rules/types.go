package rules

// Operator enumerates the comparison operators a condition may use.
type Operator string

const (
	OpEquals    Operator = "equals"
	OpGT        Operator = "gt"
	OpLT        Operator = "lt"
	OpGTE       Operator = "gte"
	OpLTE       Operator = "lte"
	OpContains  Operator = "contains"
	OpInList    Operator = "in_list"
	OpNotInList Operator = "not_in_list"
)

// Action enumerates what a matched rule recommends.
type Action string

const (
	ActionRecommendRepair   Action = "recommend_repair"
	ActionRecommendReplace  Action = "recommend_replace"
	ActionReferManufacturer Action = "refer_manufacturer"
	ActionManualReview      Action = "manual_review"
	ActionEscalate          Action = "escalate"
)

// Category is a recommendation bucket that rule weights accumulate into.
type Category string

const (
	CategoryRepair       Category = "repair"
	CategoryReplace      Category = "replace"
	CategoryManufacturer Category = "manufacturer"
	CategoryManual       Category = "manual"
)

// Categories lists the buckets in their fixed tie-break order.
func Categories() []Category {
	return []Category{CategoryRepair, CategoryReplace, CategoryManufacturer, CategoryManual}
}

// ToCategory maps a rule action onto its recommendation bucket.
func (a Action) ToCategory() Category {
	switch a {
	case ActionRecommendRepair:
		return CategoryRepair
	case ActionRecommendReplace:
		return CategoryReplace
	case ActionReferManufacturer:
		return CategoryManufacturer
	case ActionManualReview, ActionEscalate:
		return CategoryManual
	default:
		return CategoryRepair
	}
}

// Condition is one AND-combined predicate inside a rule. Either Value or
// ValueField is set; ValueField compares against another case field
// dynamically. MatchAny selects OR semantics for list-valued contains.
type Condition struct {
	Field      string      `yaml:"field"`
	Operator   Operator    `yaml:"operator"`
	Value      interface{} `yaml:"value,omitempty"`
	ValueField string      `yaml:"value_field,omitempty"`
	MatchAny   bool        `yaml:"match_any,omitempty"`
}

// Rule is a declaratively configured decision rule.
type Rule struct {
	Name       string      `yaml:"name"`
	Conditions []Condition `yaml:"conditions"`
	Action     Action      `yaml:"action"`
	Weight     float64     `yaml:"weight,omitempty"`
	Override   bool        `yaml:"override,omitempty"`
	Reasoning  string      `yaml:"reasoning"`
}

// Group is a named, prioritised collection of rules. Lower priority values
// are evaluated first.
type Group struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
	Rules    []Rule `yaml:"rules"`
}

// RuleSet is a versioned rule configuration as loaded from YAML. Additive
// future groups require no code changes.
type RuleSet struct {
	Version     string  `yaml:"version"`
	LastUpdated string  `yaml:"last_updated,omitempty"`
	Groups      []Group `yaml:"rule_groups"`
}

// AppliedRule records one rule that matched during evaluation.
type AppliedRule struct {
	Group     string  `json:"rule_set"`
	Rule      string  `json:"rule_name"`
	Action    Action  `json:"action"`
	Reasoning string  `json:"reasoning"`
	Weight    float64 `json:"weight"`
	Override  bool    `json:"override"`
}

// Outcome is the rule evaluator's independent opinion on a case.
type Outcome struct {
	Recommendation  Category             `json:"final_recommendation"`
	Confidence      float64              `json:"confidence_score"`
	OverrideApplied bool                 `json:"override_applied"`
	AppliedRules    []AppliedRule        `json:"applied_rules"`
	Tally           map[Category]float64 `json:"rule_weights,omitempty"`
	ReasoningChain  []string             `json:"reasoning_chain"`
	// EvaluatedGroups lists groups in the order they were scanned; an
	// override stops the scan, so later groups never appear here.
	EvaluatedGroups []string `json:"evaluated_groups"`
}
