package servicecase

import (
	"strings"

	"caseflow/domain/core"
	"caseflow/domain/rules"
)

// Route is the triage routing decision.
type Route string

const (
	RouteNormal             Route = "normal"
	RouteManufacturer       Route = "manufacturer"
	RouteUrgentManufacturer Route = "urgent_manufacturer"
	RouteReplacementFocus   Route = "replacement_focus"
	RouteManualReview       Route = "manual_review"
)

// Terminal reports whether the route short-circuits the pipeline.
func (r Route) Terminal() bool {
	return r == RouteManufacturer || r == RouteUrgentManufacturer || r == RouteManualReview
}

// TriageStatus marks whether the case inputs were complete at triage time.
type TriageStatus string

const (
	TriageComplete   TriageStatus = "complete"
	TriageIncomplete TriageStatus = "incomplete"
)

// Recommendation is the final case outcome.
type Recommendation string

const (
	RecommendRepair               Recommendation = "repair"
	RecommendReplace              Recommendation = "replace"
	RecommendManufacturerReferral Recommendation = "manufacturer_referral"
	RecommendManualReview         Recommendation = "manual_review"
	RecommendError                Recommendation = "error"
)

// WarrantyStatus of the device at analysis time.
type WarrantyStatus string

const (
	UnderWarranty WarrantyStatus = "under_warranty"
	OutOfWarranty WarrantyStatus = "out_of_warranty"
)

// DamageClass is the keyword-derived damage family.
type DamageClass string

const (
	DamageElectrical DamageClass = "electrical"
	DamageMechanical DamageClass = "mechanical"
	DamageUnknown    DamageClass = "unknown"
)

// Complexity buckets repair difficulty.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// AvailabilityTier is the spare-part availability classification.
type AvailabilityTier string

const (
	AvailabilityHigh   AvailabilityTier = "high"
	AvailabilityMedium AvailabilityTier = "medium"
	AvailabilityLow    AvailabilityTier = "low"
)

// CustomerTier is the CRM loyalty tier.
type CustomerTier string

const (
	TierStandard CustomerTier = "Standard"
	TierSilver   CustomerTier = "Silver"
	TierGold     CustomerTier = "Gold"
	TierPlatinum CustomerTier = "Platinum"
)

// Viability is the economic stage's repair-vs-replace verdict.
type Viability string

const (
	ViabilityRepair  Viability = "repair"
	ViabilityReplace Viability = "replace"
)

// CaseInputs are the four required, immutable case fields.
type CaseInputs struct {
	DeviceType       string `json:"device_type"`
	Brand            string `json:"brand"`
	Age              int    `json:"age"`
	ErrorDescription string `json:"error_description"`
}

// Complete reports whether every mandatory field is present.
func (in CaseInputs) Complete() bool {
	return strings.TrimSpace(in.DeviceType) != "" &&
		strings.TrimSpace(in.Brand) != "" &&
		in.Age > 0 &&
		strings.TrimSpace(in.ErrorDescription) != ""
}

// CostEstimate is the Cost Estimator collaborator contract (§ external
// interfaces): total = parts + labor, all non-negative.
type CostEstimate struct {
	PartsCost              float64          `json:"parts_cost"`
	LaborCost              float64          `json:"labor_cost"`
	TotalCost              float64          `json:"total_cost"`
	PartsAvailability      AvailabilityTier `json:"parts_availability"`
	LeadTime               string           `json:"lead_time"`
	TechnicianAvailability string           `json:"technician_availability"`
}

// CustomerProfile is the Customer Directory collaborator contract.
type CustomerProfile struct {
	CustomerID         string       `json:"customer_id"`
	Name               string       `json:"name"`
	Tier               CustomerTier `json:"customer_tier"`
	BrandLoyalty       string       `json:"brand_loyalty"`
	PreferredBrands    []string     `json:"preferred_brands"`
	BudgetRange        string       `json:"budget_range"`
	CommunicationPrefs []string     `json:"communication_prefs"`
}

// SpecSnapshot is the Catalog/Specs Provider contract for the current device.
type SpecSnapshot struct {
	OriginalPrice      float64 `json:"original_purchase_price"`
	CurrentMarketValue float64 `json:"current_market_value"`
	EnergyRating       string  `json:"energy_rating"`
	WarrantyRemaining  float64 `json:"warranty_remaining"`
}

// TriageDecision is the triage stage output.
type TriageDecision struct {
	Status    TriageStatus `json:"status"`
	Route     Route        `json:"route"`
	Reasoning string       `json:"reasoning"`
}

// EnrichmentOutputs are written exactly once by the enrichment stage.
type EnrichmentOutputs struct {
	RepairCost            float64          `json:"repair_cost"`
	SparePartAvailability AvailabilityTier `json:"spare_part_availability"`
	Customer              CustomerProfile  `json:"customer_data"`
	Specs                 SpecSnapshot     `json:"device_specs"`
	CostCeiling           float64          `json:"cost_ceiling"`
	Estimate              CostEstimate     `json:"cost_estimate"`
}

// TechnicalDetail bundles secondary technical findings.
type TechnicalDetail struct {
	MatchedPattern    string  `json:"matched_error_pattern,omitempty"`
	AgeImpactFactor   float64 `json:"age_impact_factor"`
	EstimatedTimeline string  `json:"estimated_timeline"`
	RequiredExpertise string  `json:"required_expertise"`
	PartsComplexity   string  `json:"parts_complexity"`
	RiskAssessment    string  `json:"risk_assessment"`
}

// TechnicalOutputs are written exactly once by the technical analysis stage.
type TechnicalOutputs struct {
	WarrantyStatus       WarrantyStatus  `json:"warranty_status"`
	DamageClassification DamageClass     `json:"damage_classification"`
	RepairProbability    float64         `json:"repair_probability"`
	RepairComplexity     Complexity      `json:"repair_complexity"`
	Detail               TechnicalDetail `json:"technical_analysis"`
}

// MarginEntry is one replacement candidate's margin economics.
type MarginEntry struct {
	Model     string  `json:"model"`
	Price     float64 `json:"price"`
	Margin    float64 `json:"margin"`
	MarginPct float64 `json:"margin_percentage"`
}

// MarginAnalysis bundles the economic stage's financial modelling.
type MarginAnalysis struct {
	RepairROI             float64       `json:"repair_roi"`
	BestReplacementMargin float64       `json:"best_replacement_margin"`
	CostRatio             float64       `json:"cost_effectiveness_ratio"`
	Table                 []MarginEntry `json:"replacement_margins,omitempty"`
}

// EconomicOutputs are written exactly once by the economic analysis stage.
type EconomicOutputs struct {
	Viability       Viability      `json:"economic_viability"`
	Score           float64        `json:"economic_score"`
	Reasoning       string         `json:"economic_reasoning"`
	ReasoningPoints []string       `json:"detailed_reasoning"`
	Margin          MarginAnalysis `json:"margin_analysis"`
}

// FinalOutputs are written exactly once by recommendation synthesis (or by a
// terminal route).
type FinalOutputs struct {
	Recommendation     Recommendation     `json:"recommendation"`
	Confidence         float64            `json:"confidence_score"`
	Justification      string             `json:"justification"`
	RepairOrder        *RepairOrder       `json:"repair_order,omitempty"`
	ReplacementOptions []ReplacementOffer `json:"replacement_options,omitempty"`
	Trace              DecisionTrace      `json:"agent_reasoning"`
}

// CaseRecord is the single object threaded through every stage. The four
// inputs are set once at construction and never mutated; each stage owns a
// disjoint output group, merged in by the orchestrator's reducer.
type CaseRecord struct {
	ID     core.CaseID `json:"case_id"`
	Inputs CaseInputs  `json:"inputs"`

	Triage     *TriageDecision    `json:"triage_decision,omitempty"`
	Enrichment *EnrichmentOutputs `json:"enrichment,omitempty"`
	Technical  *TechnicalOutputs  `json:"technical,omitempty"`
	Economic   *EconomicOutputs   `json:"economic,omitempty"`
	Final      *FinalOutputs      `json:"final,omitempty"`

	// RuleOpinion is the rule evaluator's independent verdict on the same
	// case; the caller reconciles it against the pipeline verdict.
	RuleOpinion *rules.Outcome `json:"business_rules,omitempty"`
}

// NewCaseRecord creates a record from the required inputs.
func NewCaseRecord(inputs CaseInputs) CaseRecord {
	return CaseRecord{ID: core.CaseID(core.NewID()), Inputs: inputs}
}

// Category returns the lowercase device category.
func (r CaseRecord) Category() string {
	return strings.ToLower(r.Inputs.DeviceType)
}

// FaultText returns the lowercase fault description for keyword matching.
func (r CaseRecord) FaultText() string {
	return strings.ToLower(r.Inputs.ErrorDescription)
}
