package servicecase

import (
	"time"

	"caseflow/domain/catalog"
	"caseflow/domain/core"
	"caseflow/domain/rules"
)

// DeviceInfo echoes the case inputs on outbound artifacts.
type DeviceInfo struct {
	Type             string `json:"type"`
	Brand            string `json:"brand"`
	Age              int    `json:"age"`
	ErrorDescription string `json:"error_description"`
}

// CostBreakdown splits a repair quote.
type CostBreakdown struct {
	PartsCost float64 `json:"parts_cost"`
	LaborCost float64 `json:"labor_cost"`
	TotalCost float64 `json:"total_cost"`
}

// RepairTimeline schedules the repair.
type RepairTimeline struct {
	EstimatedDuration      string `json:"estimated_duration"`
	TechnicianAvailability string `json:"technician_availability"`
	PartsDelivery          string `json:"parts_delivery"`
}

// WarrantyTerms covers the repair itself.
type WarrantyTerms struct {
	Status         WarrantyStatus `json:"status"`
	RepairWarranty string         `json:"repair_warranty"`
	Coverage       string         `json:"coverage"`
}

// RepairOrder is the artifact produced when the recommendation is repair.
type RepairOrder struct {
	OrderID       core.OrderID   `json:"order_id"`
	Device        DeviceInfo     `json:"device_info"`
	Costs         CostBreakdown  `json:"cost_breakdown"`
	Timeline      RepairTimeline `json:"timeline"`
	Warranty      WarrantyTerms  `json:"warranty_info"`
	SkillRequired string         `json:"skill_level_required"`
	Priority      string         `json:"priority"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_timestamp"`
}

// TCOBreakdown projects total cost of ownership over ten years.
type TCOBreakdown struct {
	InitialCost         float64 `json:"initial_cost"`
	AnnualOperatingCost float64 `json:"annual_operating_cost"`
	TenYearTotal        float64 `json:"tco_10_years"`
	MonthlyCost         float64 `json:"monthly_cost"`
}

// ReplacementOffer is one ranked replacement candidate with derived fields.
type ReplacementOffer struct {
	Product            catalog.Product   `json:"product"`
	Score              float64           `json:"recommendation_score"`
	Rank               int               `json:"ranking_position"`
	ConfidenceLabel    string            `json:"recommendation_confidence"`
	ScoringBreakdown   map[string]string `json:"scoring_breakdown"`
	EstimatedDelivery  string            `json:"estimated_delivery"`
	WarrantyYears      int               `json:"warranty_years"`
	TradeInValue       float64           `json:"trade_in_value"`
	FinancingAvailable bool              `json:"financing_available"`
	TCO                TCOBreakdown      `json:"total_cost_of_ownership"`
	Reasons            []string          `json:"recommended_reasons"`
}

// TraceTechnical summarises the technical stage for the transparency bundle.
type TraceTechnical struct {
	Probability float64    `json:"probability"`
	Complexity  Complexity `json:"complexity"`
	Risk        string     `json:"risk"`
}

// TraceEconomic summarises the economic stage for the transparency bundle.
type TraceEconomic struct {
	Viability Viability `json:"viability"`
	Score     float64   `json:"score"`
	Reasoning string    `json:"reasoning"`
}

// TraceFinal summarises the synthesis stage for the transparency bundle.
type TraceFinal struct {
	Confidence      float64 `json:"confidence"`
	OverrideApplied bool    `json:"override_applied"`
	OverrideReason  string  `json:"override_reason,omitempty"`
}

// DecisionTrace records which stage or rule contributed what.
type DecisionTrace struct {
	Triage       TriageDecision `json:"triage"`
	Technical    TraceTechnical `json:"technical"`
	Economic     TraceEconomic  `json:"economic"`
	Final        TraceFinal     `json:"final"`
	Rules        *rules.Outcome `json:"business_rules,omitempty"`
	WorkflowPath []string       `json:"workflow_path"`
}

// Decision is what the core exposes to the orchestration layer for one case.
type Decision struct {
	CaseID             core.CaseID        `json:"case_id"`
	Recommendation     Recommendation     `json:"recommendation"`
	Confidence         float64            `json:"confidence_score"`
	Justification      string             `json:"justification"`
	RepairOrder        *RepairOrder       `json:"repair_order,omitempty"`
	ReplacementOptions []ReplacementOffer `json:"replacement_options,omitempty"`
	Trace              DecisionTrace      `json:"trace"`
	ProcessingTimeMs   int64              `json:"processing_time_ms"`
}
