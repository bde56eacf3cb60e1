package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"caseflow/domain/rules"
	"caseflow/domain/servicecase"
	"caseflow/internal"
)

// Orchestrator owns the reducer: stages return patches and only this loop
// merges them into the case record, so each field keeps a single writer.
type Orchestrator struct {
	stages  *Stages
	timeout time.Duration
	logger  *internal.Logger
}

// NewOrchestrator wires the stage set with a per-case deadline.
func NewOrchestrator(stages *Stages, timeout time.Duration, logger *internal.Logger) *Orchestrator {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Orchestrator{stages: stages, timeout: timeout, logger: logger}
}

// Run executes triage, enrichment, the parallel analysis pair and synthesis
// for one case. A panic or deadline inside any stage degrades the case to an
// error verdict instead of failing the call; err is reserved for caller
// misuse (nil context and the like).
func (o *Orchestrator) Run(ctx context.Context, inputs servicecase.CaseInputs, data EnrichmentData, opinion *rules.Outcome) (rec servicecase.CaseRecord, err error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	rec = servicecase.NewCaseRecord(inputs)
	rec.RuleOpinion = opinion
	path := []string{"triage"}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("[Pipeline] case %s panicked: %v", rec.ID, r)
			rec = o.errorTerminal(rec, path, fmt.Sprintf("internal stage failure: %v", r))
			err = nil
		}
	}()

	rec = rec.ApplyTriage(o.stages.Triage(rec))

	if rec.Triage.Route.Terminal() {
		path = append(path, "terminal")
		rec = rec.ApplyFinal(o.terminalFinal(*rec.Triage, path, opinion))
		return rec, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return o.errorTerminal(rec, path, "deadline exceeded before enrichment"), nil
	}

	path = append(path, "enrichment")
	rec = rec.ApplyEnrichment(o.stages.Enrich(rec, data))

	// Technical and economic run on the same immutable snapshot; neither can
	// observe the other's output.
	snapshot := rec
	var techPatch servicecase.TechnicalPatch
	var econPatch servicecase.EconomicPatch

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		techPatch = o.stages.AnalyzeTechnical(snapshot)
		return gctx.Err()
	})
	g.Go(func() error {
		econPatch = o.stages.AnalyzeEconomic(snapshot, data.Candidates)
		return gctx.Err()
	})
	if gErr := g.Wait(); gErr != nil {
		return o.errorTerminal(rec, path, "deadline exceeded during analysis"), nil
	}

	path = append(path, "technical", "economic")
	rec = rec.ApplyTechnical(techPatch).ApplyEconomic(econPatch)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return o.errorTerminal(rec, path, "deadline exceeded before synthesis"), nil
	}

	path = append(path, "synthesis")
	final := o.stages.Synthesize(rec, data.Candidates)
	final.Outputs.Trace.Triage = *rec.Triage
	final.Outputs.Trace.Technical = servicecase.TraceTechnical{
		Probability: rec.Technical.RepairProbability,
		Complexity:  rec.Technical.RepairComplexity,
		Risk:        rec.Technical.Detail.RiskAssessment,
	}
	final.Outputs.Trace.Economic = servicecase.TraceEconomic{
		Viability: rec.Economic.Viability,
		Score:     rec.Economic.Score,
		Reasoning: rec.Economic.Reasoning,
	}
	final.Outputs.Trace.Rules = opinion
	final.Outputs.Trace.WorkflowPath = path
	rec = rec.ApplyFinal(final)

	return rec, nil
}

// terminalFinal converts a terminal triage route into a final verdict without
// running the analysis stages.
func (o *Orchestrator) terminalFinal(triage servicecase.TriageDecision, path []string, opinion *rules.Outcome) servicecase.FinalPatch {
	recommendation := servicecase.RecommendManualReview
	confidence := 0.0
	if triage.Route == servicecase.RouteManufacturer || triage.Route == servicecase.RouteUrgentManufacturer {
		recommendation = servicecase.RecommendManufacturerReferral
		confidence = 1.0
	}
	return servicecase.FinalPatch{Outputs: servicecase.FinalOutputs{
		Recommendation: recommendation,
		Confidence:     confidence,
		Justification:  triage.Reasoning,
		Trace: servicecase.DecisionTrace{
			Triage:       triage,
			Final:        servicecase.TraceFinal{Confidence: confidence},
			Rules:        opinion,
			WorkflowPath: path,
		},
	}}
}

// errorTerminal marks a case that could not complete analysis. Confidence is
// pinned to zero so downstream consumers never act on it automatically.
func (o *Orchestrator) errorTerminal(rec servicecase.CaseRecord, path []string, detail string) servicecase.CaseRecord {
	path = append(path, "error")
	triage := servicecase.TriageDecision{}
	if rec.Triage != nil {
		triage = *rec.Triage
	}
	return rec.ApplyFinal(servicecase.FinalPatch{Outputs: servicecase.FinalOutputs{
		Recommendation: servicecase.RecommendError,
		Confidence:     0,
		Justification:  "Case processing failed: " + detail,
		Trace: servicecase.DecisionTrace{
			Triage:       triage,
			Rules:        rec.RuleOpinion,
			WorkflowPath: path,
		},
	}})
}
