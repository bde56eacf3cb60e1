package sap

import (
	"context"
	"math"
	"testing"

	"caseflow/adapters/rng"
	"caseflow/domain/catalog"
	"caseflow/domain/servicecase"
)

func TestEstimateRepairKnownSignature(t *testing.T) {
	e := NewEstimator(catalog.Default(), nil, 0)

	est, err := e.EstimateRepair(context.Background(), "cooktop", "V-Zug", "error E26 shown")
	if err != nil {
		t.Fatalf("EstimateRepair: %v", err)
	}

	if est.TotalCost != 180 {
		t.Errorf("total = %.2f, want 180", est.TotalCost)
	}
	if est.PartsCost != 108 || est.LaborCost != 72 {
		t.Errorf("parts/labor = %.2f/%.2f, want 108/72", est.PartsCost, est.LaborCost)
	}
	// E26 carries a 0.95 success rate, which upgrades availability.
	if est.PartsAvailability != servicecase.AvailabilityHigh {
		t.Errorf("availability = %q, want high", est.PartsAvailability)
	}
	if math.Abs(est.PartsCost+est.LaborCost-est.TotalCost) > 1e-9 {
		t.Errorf("parts + labor = %.2f, total = %.2f", est.PartsCost+est.LaborCost, est.TotalCost)
	}
}

func TestEstimateRepairDefaultQuote(t *testing.T) {
	e := NewEstimator(catalog.Default(), nil, 0)

	est, err := e.EstimateRepair(context.Background(), "cooktop", "UnknownBrand", "xyz")
	if err != nil {
		t.Fatalf("EstimateRepair: %v", err)
	}
	if est.TotalCost != 300 {
		t.Errorf("total = %.2f, want default 300", est.TotalCost)
	}
	if est.PartsAvailability != servicecase.AvailabilityMedium {
		t.Errorf("availability = %q, want medium", est.PartsAvailability)
	}
}

func TestEstimateRepairJitterIsSeeded(t *testing.T) {
	cat := catalog.Default()
	adapter := rng.NewAdapter()

	first, err := NewEstimator(cat, adapter, 42).EstimateRepair(context.Background(), "cooktop", "UnknownBrand", "xyz")
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewEstimator(cat, adapter, 42).EstimateRepair(context.Background(), "cooktop", "UnknownBrand", "xyz")
	if err != nil {
		t.Fatal(err)
	}
	if first.TotalCost != second.TotalCost {
		t.Errorf("same seed produced %.2f and %.2f", first.TotalCost, second.TotalCost)
	}

	// Jitter stays within -50..+100 of the table cost.
	if first.TotalCost < 250 || first.TotalCost > 400 {
		t.Errorf("jittered total %.2f outside [250, 400]", first.TotalCost)
	}
}

func TestEstimateRepairZeroSeedDisablesJitter(t *testing.T) {
	e := NewEstimator(catalog.Default(), rng.NewAdapter(), 0)
	est, err := e.EstimateRepair(context.Background(), "cooktop", "UnknownBrand", "xyz")
	if err != nil {
		t.Fatal(err)
	}
	if est.TotalCost != 300 {
		t.Errorf("total = %.2f, want exactly 300 with jitter disabled", est.TotalCost)
	}
}

func TestCreateServiceOrderReturnsReference(t *testing.T) {
	e := NewEstimator(catalog.Default(), nil, 0)
	order := servicecase.RepairOrder{
		Device: servicecase.DeviceInfo{Type: "cooktop", Brand: "V-Zug"},
		Costs:  servicecase.CostBreakdown{TotalCost: 180},
	}
	ref, err := e.CreateServiceOrder(context.Background(), order)
	if err != nil {
		t.Fatalf("CreateServiceOrder: %v", err)
	}
	if ref == "" {
		t.Error("empty order reference")
	}
}
