package pipeline

import (
	"testing"

	"caseflow/domain/catalog"
	"caseflow/domain/servicecase"
	"caseflow/internal/ranking"
)

func newTestStages() *Stages {
	cat := catalog.Default()
	return NewStages(cat, ranking.NewRanker(cat))
}

func TestTriageRouting(t *testing.T) {
	s := newTestStages()

	tests := []struct {
		name       string
		inputs     servicecase.CaseInputs
		wantStatus servicecase.TriageStatus
		wantRoute  servicecase.Route
	}{
		{
			name:       "missing age routes to manual review",
			inputs:     servicecase.CaseInputs{DeviceType: "oven", Brand: "Siemens", ErrorDescription: "broken"},
			wantStatus: servicecase.TriageIncomplete,
			wantRoute:  servicecase.RouteManualReview,
		},
		{
			name:       "missing description routes to manual review",
			inputs:     servicecase.CaseInputs{DeviceType: "oven", Brand: "Siemens", Age: 3},
			wantStatus: servicecase.TriageIncomplete,
			wantRoute:  servicecase.RouteManualReview,
		},
		{
			name:       "safety keyword escalates regardless of case",
			inputs:     servicecase.CaseInputs{DeviceType: "dishwasher", Brand: "V-Zug", Age: 5, ErrorDescription: "SMOKE from the panel"},
			wantStatus: servicecase.TriageComplete,
			wantRoute:  servicecase.RouteUrgentManufacturer,
		},
		{
			name:       "safety wins over end-of-life age",
			inputs:     servicecase.CaseInputs{DeviceType: "oven", Brand: "Siemens", Age: 20, ErrorDescription: "fire inside the cavity"},
			wantStatus: servicecase.TriageComplete,
			wantRoute:  servicecase.RouteUrgentManufacturer,
		},
		{
			name:       "young oven goes to manufacturer",
			inputs:     servicecase.CaseInputs{DeviceType: "oven", Brand: "Siemens", Age: 1, ErrorDescription: "door seal damaged"},
			wantStatus: servicecase.TriageComplete,
			wantRoute:  servicecase.RouteManufacturer,
		},
		{
			name:       "young cooktop stays on the normal path",
			inputs:     servicecase.CaseInputs{DeviceType: "cooktop", Brand: "V-Zug", Age: 1, ErrorDescription: "power_issue"},
			wantStatus: servicecase.TriageComplete,
			wantRoute:  servicecase.RouteNormal,
		},
		{
			name:       "fifteen years flips to replacement focus",
			inputs:     servicecase.CaseInputs{DeviceType: "oven", Brand: "Siemens", Age: 15, ErrorDescription: "control board failure"},
			wantStatus: servicecase.TriageComplete,
			wantRoute:  servicecase.RouteReplacementFocus,
		},
		{
			name:       "standard case",
			inputs:     servicecase.CaseInputs{DeviceType: "cooktop", Brand: "V-Zug", Age: 3, ErrorDescription: "F7 E3 heating element not working"},
			wantStatus: servicecase.TriageComplete,
			wantRoute:  servicecase.RouteNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := servicecase.NewCaseRecord(tt.inputs)
			patch := s.Triage(rec)
			if patch.Decision.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", patch.Decision.Status, tt.wantStatus)
			}
			if patch.Decision.Route != tt.wantRoute {
				t.Errorf("route = %q, want %q", patch.Decision.Route, tt.wantRoute)
			}
			if patch.Decision.Reasoning == "" {
				t.Error("triage decision has no reasoning")
			}
		})
	}
}

func TestTriageOldDevicesNeverNormal(t *testing.T) {
	s := newTestStages()
	for age := 15; age <= 40; age++ {
		rec := servicecase.NewCaseRecord(servicecase.CaseInputs{
			DeviceType: "dishwasher", Brand: "V-Zug", Age: age, ErrorDescription: "pump noise",
		})
		patch := s.Triage(rec)
		if patch.Decision.Route != servicecase.RouteReplacementFocus {
			t.Fatalf("age %d: route = %q, want replacement_focus", age, patch.Decision.Route)
		}
	}
}
