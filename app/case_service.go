package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"caseflow/domain/rules"
	"caseflow/domain/servicecase"
	"caseflow/internal"
	"caseflow/internal/pipeline"
	ruleeval "caseflow/internal/rules"
	"caseflow/ports"
)

// CaseService runs the full decision flow for one case: collaborator
// fetches, rule evaluation, pipeline execution, reconciliation and side
// effects.
type CaseService struct {
	orchestrator *pipeline.Orchestrator
	stages       *pipeline.Stages
	estimator    ports.CostEstimator
	directory    ports.CustomerDirectory
	provider     ports.CatalogProvider
	notifier     ports.Notifier
	rules        *ruleeval.Provider
	logger       *internal.Logger
}

// NewCaseService wires the decision flow.
func NewCaseService(
	orchestrator *pipeline.Orchestrator,
	stages *pipeline.Stages,
	estimator ports.CostEstimator,
	directory ports.CustomerDirectory,
	provider ports.CatalogProvider,
	notifier ports.Notifier,
	ruleProvider *ruleeval.Provider,
	logger *internal.Logger,
) *CaseService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CaseService{
		orchestrator: orchestrator,
		stages:       stages,
		estimator:    estimator,
		directory:    directory,
		provider:     provider,
		notifier:     notifier,
		rules:        ruleProvider,
		logger:       logger,
	}
}

// Process decides one case end to end. The returned decision is always
// usable; degraded collaborator data and stage failures surface as lowered
// confidence or the error recommendation, never as a failed call.
func (s *CaseService) Process(ctx context.Context, inputs servicecase.CaseInputs) (servicecase.Decision, error) {
	started := time.Now()

	data := s.fetchEnrichment(ctx, inputs)
	opinion := s.ruleOpinion(inputs, data)

	rec, err := s.orchestrator.Run(ctx, inputs, data, opinion)
	if err != nil {
		return servicecase.Decision{}, err
	}

	decision := s.reconcile(rec, opinion)
	decision.ProcessingTimeMs = time.Since(started).Milliseconds()

	s.dispatchSideEffects(ctx, inputs, decision)
	s.logger.Info("[CaseService] case %s decided: %s (%.0f%% confidence, %dms)",
		decision.CaseID, decision.Recommendation, decision.Confidence*100, decision.ProcessingTimeMs)
	return decision, nil
}

// EvaluateRules runs only the rule engine against a case, using the same
// provisional analysis the full flow feeds it.
func (s *CaseService) EvaluateRules(ctx context.Context, inputs servicecase.CaseInputs) rules.Outcome {
	data := s.fetchEnrichment(ctx, inputs)
	return *s.ruleOpinion(inputs, data)
}

// RuleGroupSummary describes one configured rule group.
type RuleGroupSummary struct {
	Name      string `json:"name"`
	Priority  int    `json:"priority"`
	RuleCount int    `json:"rule_count"`
}

// RulesSummary describes the active rule configuration.
type RulesSummary struct {
	Version    string             `json:"version"`
	TotalRules int                `json:"total_rules"`
	Groups     []RuleGroupSummary `json:"rule_groups"`
}

// Rules summarises the currently loaded rule set.
func (s *CaseService) Rules() RulesSummary {
	engine := s.rules.Engine()
	summary := RulesSummary{Version: engine.Version()}
	for _, g := range engine.Groups() {
		summary.Groups = append(summary.Groups, RuleGroupSummary{
			Name:      g.Name,
			Priority:  g.Priority,
			RuleCount: len(g.Rules),
		})
		summary.TotalRules += len(g.Rules)
	}
	return summary
}

// fetchEnrichment gathers collaborator data concurrently. Any failed fetch
// is logged and left at its zero value; the enrichment stage substitutes the
// documented defaults.
func (s *CaseService) fetchEnrichment(ctx context.Context, inputs servicecase.CaseInputs) pipeline.EnrichmentData {
	var data pipeline.EnrichmentData
	category := servicecase.NewCaseRecord(inputs).Category()

	g := new(errgroup.Group)
	g.Go(func() error {
		est, err := s.estimator.EstimateRepair(ctx, category, inputs.Brand, inputs.ErrorDescription)
		if err != nil {
			s.logger.Warn("[CaseService] cost estimate unavailable, using defaults: %v", err)
			return nil
		}
		data.Estimate = est
		return nil
	})
	g.Go(func() error {
		profile, err := s.directory.GetProfile(ctx, "")
		if err != nil {
			s.logger.Warn("[CaseService] customer profile unavailable, assuming Standard tier: %v", err)
			return nil
		}
		data.Customer = profile
		return nil
	})
	g.Go(func() error {
		specs, err := s.provider.DeviceSpecs(ctx, category, inputs.Brand, inputs.Age)
		if err != nil {
			s.logger.Warn("[CaseService] device specs unavailable, using catalog anchors: %v", err)
			return nil
		}
		data.Specs = specs
		return nil
	})
	g.Go(func() error {
		candidates, err := s.provider.ReplacementCandidates(ctx, category)
		if err != nil {
			s.logger.Warn("[CaseService] replacement candidates unavailable: %v", err)
			return nil
		}
		data.Candidates = candidates
		return nil
	})
	g.Wait()
	return data
}

// ruleOpinion evaluates the configured rules against a provisional analysis
// of the case. The provisional record never leaves this method; the
// orchestrator builds the authoritative one.
func (s *CaseService) ruleOpinion(inputs servicecase.CaseInputs, data pipeline.EnrichmentData) *rules.Outcome {
	rec := servicecase.NewCaseRecord(inputs)
	rec = rec.ApplyTriage(s.stages.Triage(rec))
	if !rec.Triage.Route.Terminal() {
		rec = rec.ApplyEnrichment(s.stages.Enrich(rec, data))
		rec = rec.ApplyTechnical(s.stages.AnalyzeTechnical(rec))
		rec = rec.ApplyEconomic(s.stages.AnalyzeEconomic(rec, data.Candidates))
	}
	out := s.rules.Engine().Evaluate(rec)
	return &out
}

// reconcile resolves the pipeline verdict against the rule opinion. The
// pipeline wins whenever it produced a recommendation; the rule outcome is
// always preserved in the trace either way.
func (s *CaseService) reconcile(rec servicecase.CaseRecord, opinion *rules.Outcome) servicecase.Decision {
	if rec.Final == nil {
		recommendation := servicecase.RecommendManualReview
		confidence := 0.0
		justification := "Analysis incomplete - routed to manual review"
		if opinion != nil {
			recommendation = categoryToRecommendation(opinion.Recommendation)
			confidence = opinion.Confidence
			justification = "Decision taken from business rules"
		}
		return servicecase.Decision{
			CaseID:         rec.ID,
			Recommendation: recommendation,
			Confidence:     confidence,
			Justification:  justification,
			Trace:          servicecase.DecisionTrace{Rules: opinion},
		}
	}

	return servicecase.Decision{
		CaseID:             rec.ID,
		Recommendation:     rec.Final.Recommendation,
		Confidence:         rec.Final.Confidence,
		Justification:      rec.Final.Justification,
		RepairOrder:        rec.Final.RepairOrder,
		ReplacementOptions: rec.Final.ReplacementOptions,
		Trace:              rec.Final.Trace,
	}
}

func categoryToRecommendation(cat rules.Category) servicecase.Recommendation {
	switch cat {
	case rules.CategoryRepair:
		return servicecase.RecommendRepair
	case rules.CategoryReplace:
		return servicecase.RecommendReplace
	case rules.CategoryManufacturer:
		return servicecase.RecommendManufacturerReferral
	default:
		return servicecase.RecommendManualReview
	}
}

// dispatchSideEffects registers downstream artifacts for the decision.
// Failures are logged and never affect the returned decision.
func (s *CaseService) dispatchSideEffects(ctx context.Context, inputs servicecase.CaseInputs, d servicecase.Decision) {
	switch d.Recommendation {
	case servicecase.RecommendRepair:
		if d.RepairOrder != nil {
			if ref, err := s.estimator.CreateServiceOrder(ctx, *d.RepairOrder); err != nil {
				s.logger.Warn("[CaseService] service order creation failed for case %s: %v", d.CaseID, err)
			} else {
				s.logger.Info("[CaseService] service order %s registered for case %s", ref, d.CaseID)
			}
		}
	case servicecase.RecommendReplace:
		if len(d.ReplacementOptions) > 0 {
			top := d.ReplacementOptions[0]
			name := fmt.Sprintf("%s %s replacement", inputs.Brand, inputs.DeviceType)
			if ref, err := s.directory.CreateOpportunity(ctx, name, top.Product.Price); err != nil {
				s.logger.Warn("[CaseService] opportunity creation failed for case %s: %v", d.CaseID, err)
			} else {
				s.logger.Info("[CaseService] opportunity %s registered for case %s", ref, d.CaseID)
			}
		}
	}

	err := s.notifier.Notify(ctx, "customer_notification", map[string]interface{}{
		"case_id":        string(d.CaseID),
		"recommendation": string(d.Recommendation),
		"confidence":     d.Confidence,
	})
	if err != nil {
		s.logger.Warn("[CaseService] customer notification failed for case %s: %v", d.CaseID, err)
	}
}
