package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"caseflow/adapters/msgraph"
	"caseflow/adapters/pim"
	"caseflow/adapters/salesforce"
	"caseflow/adapters/sap"
	"caseflow/domain/catalog"
	"caseflow/domain/servicecase"
	"caseflow/internal/pipeline"
	"caseflow/internal/ranking"
	ruleeval "caseflow/internal/rules"
)

func newTestService(t *testing.T) *CaseService {
	t.Helper()

	cat := catalog.Default()
	stages := pipeline.NewStages(cat, ranking.NewRanker(cat))
	orchestrator := pipeline.NewOrchestrator(stages, 5*time.Second, nil)

	ruleProvider, err := ruleeval.NewProvider("", false, nil)
	require.NoError(t, err)

	return NewCaseService(
		orchestrator, stages,
		sap.NewEstimator(cat, nil, 0),
		salesforce.NewDirectory(),
		pim.NewProvider(cat),
		msgraph.NewNotifier(),
		ruleProvider, nil,
	)
}

func TestProcessPremiumRepairScenario(t *testing.T) {
	svc := newTestService(t)

	decision, err := svc.Process(context.Background(), servicecase.CaseInputs{
		DeviceType: "cooktop", Brand: "V-Zug", Age: 3,
		ErrorDescription: "F7 E3 heating element not working",
	})
	require.NoError(t, err)

	require.Equal(t, servicecase.RecommendRepair, decision.Recommendation)
	require.InDelta(t, 0.95, decision.Confidence, 1e-9)
	require.NotNil(t, decision.RepairOrder)
	require.Equal(t, "V-Zug", decision.RepairOrder.Device.Brand)
	require.Greater(t, decision.RepairOrder.Costs.TotalCost, 0.0)
	require.True(t, decision.Trace.Final.OverrideApplied)
	require.Equal(t, "High success probability with premium customer", decision.Trace.Final.OverrideReason)
	require.NotNil(t, decision.Trace.Rules)
	require.GreaterOrEqual(t, decision.ProcessingTimeMs, int64(0))
}

func TestProcessAgedReplacementScenario(t *testing.T) {
	svc := newTestService(t)

	decision, err := svc.Process(context.Background(), servicecase.CaseInputs{
		DeviceType: "oven", Brand: "Siemens", Age: 15,
		ErrorDescription: "Complete control board failure",
	})
	require.NoError(t, err)

	require.Equal(t, servicecase.RecommendReplace, decision.Recommendation)
	require.InDelta(t, 0.63, decision.Confidence, 1e-9)
	require.Nil(t, decision.RepairOrder)
	require.Len(t, decision.ReplacementOptions, 2)
	require.True(t, decision.Trace.Final.OverrideApplied)
	require.Equal(t, "Low technical success probability", decision.Trace.Final.OverrideReason)
	require.Equal(t, servicecase.RouteReplacementFocus, decision.Trace.Triage.Route)
}

func TestProcessSafetyEscalationScenario(t *testing.T) {
	svc := newTestService(t)

	decision, err := svc.Process(context.Background(), servicecase.CaseInputs{
		DeviceType: "dishwasher", Brand: "V-Zug", Age: 5,
		ErrorDescription: "Smoke coming from the control panel",
	})
	require.NoError(t, err)

	require.Equal(t, servicecase.RecommendManufacturerReferral, decision.Recommendation)
	require.Equal(t, 1.0, decision.Confidence)
	require.Nil(t, decision.RepairOrder)
	require.Empty(t, decision.ReplacementOptions)

	// The rule opinion agrees via its own safety override and is preserved
	// in the trace even though the pipeline verdict is authoritative.
	require.NotNil(t, decision.Trace.Rules)
	require.True(t, decision.Trace.Rules.OverrideApplied)
}

func TestProcessIncompleteCaseNeverErrors(t *testing.T) {
	svc := newTestService(t)

	decision, err := svc.Process(context.Background(), servicecase.CaseInputs{
		DeviceType: "oven", Brand: "Siemens",
	})
	require.NoError(t, err)
	require.Equal(t, servicecase.RecommendManualReview, decision.Recommendation)
	require.Equal(t, 0.0, decision.Confidence)
}

func TestEvaluateRulesStandalone(t *testing.T) {
	svc := newTestService(t)

	outcome := svc.EvaluateRules(context.Background(), servicecase.CaseInputs{
		DeviceType: "cooktop", Brand: "V-Zug", Age: 3,
		ErrorDescription: "F7 E3 heating element not working",
	})

	require.False(t, outcome.OverrideApplied)
	require.NotEmpty(t, outcome.AppliedRules)
	require.NotEmpty(t, outcome.EvaluatedGroups)
}

func TestRulesSummary(t *testing.T) {
	svc := newTestService(t)

	summary := svc.Rules()
	require.Equal(t, "1.0", summary.Version)
	require.Len(t, summary.Groups, 5)
	require.Greater(t, summary.TotalRules, 0)
	require.Equal(t, "safety_rules", summary.Groups[0].Name)
}
