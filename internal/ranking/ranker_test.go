package ranking

import (
	"testing"

	"caseflow/domain/catalog"
)

func testRequest() Request {
	cat := catalog.Default()
	return Request{
		Category:    "cooktop",
		CostCeiling: 1800,
		DeviceAge:   12,
		Candidates:  cat.Products("cooktop"),
	}
}

func TestRankReturnsTopThreeDescending(t *testing.T) {
	r := NewRanker(catalog.Default())
	offers := r.Rank(testRequest())

	if len(offers) != 3 {
		t.Fatalf("offers = %d, want 3", len(offers))
	}
	for i, o := range offers {
		if o.Rank != i+1 {
			t.Errorf("offer %d has rank %d", i, o.Rank)
		}
		if i > 0 && o.Score > offers[i-1].Score {
			t.Errorf("scores not descending at %d: %.1f > %.1f", i, o.Score, offers[i-1].Score)
		}
	}
}

func TestRankBudgetFilter(t *testing.T) {
	r := NewRanker(catalog.Default())

	req := testRequest()
	req.DeviceAge = 3
	req.CostCeiling = 800
	// Young device: budget is 800 * 1.5 = 1200, which only the entry-level
	// Siemens cooktop fits.
	offers := r.Rank(req)
	if len(offers) != 1 {
		t.Fatalf("offers = %d, want 1", len(offers))
	}
	if offers[0].Product.Brand != "Siemens" {
		t.Errorf("offer brand = %q, want Siemens", offers[0].Product.Brand)
	}

	// Old device: the multiplier widens to 2.0 and everything fits.
	req.DeviceAge = 12
	req.CostCeiling = 1800
	if got := r.Rank(req); len(got) != 3 {
		t.Errorf("offers = %d, want 3", len(got))
	}
}

func TestRankNoAffordableCandidates(t *testing.T) {
	r := NewRanker(catalog.Default())
	req := testRequest()
	req.CostCeiling = 100
	if offers := r.Rank(req); offers != nil {
		t.Errorf("offers = %v, want nil", offers)
	}
}

func TestRankPreferredBrandBoost(t *testing.T) {
	r := NewRanker(catalog.Default())

	req := testRequest()
	// Two candidates keep both offers visible in every ranking.
	req.Candidates = []catalog.Product{
		{Brand: "V-Zug", Model: "AdoraID V4000", Price: 1800, Margin: 360, Stock: catalog.StockMed, EnergyRating: "A+"},
		{Brand: "Siemens", Model: "EX875LYC1E", Price: 1200, Margin: 240, Stock: catalog.StockHigh, EnergyRating: "A"},
	}
	base := r.Rank(req)

	req.PreferredBrands = []string{"Siemens"}
	boosted := r.Rank(req)

	var baseScore, boostedScore float64
	for _, o := range base {
		if o.Product.Brand == "Siemens" {
			baseScore = o.Score
		}
	}
	for _, o := range boosted {
		if o.Product.Brand == "Siemens" {
			boostedScore = o.Score
		}
	}
	if boostedScore != baseScore+15 {
		t.Errorf("preference boost = %.1f, want +15 (base %.1f, boosted %.1f)",
			boostedScore-baseScore, baseScore, boostedScore)
	}
}

func TestOfferDerivedFields(t *testing.T) {
	r := NewRanker(catalog.Default())
	offers := r.Rank(testRequest())

	for _, o := range offers {
		if o.EstimatedDelivery == "" {
			t.Errorf("%s: no delivery estimate", o.Product.Model)
		}
		wantWarranty := 2
		if catalog.PremiumBrand(o.Product.Brand) {
			wantWarranty = 3
		}
		if o.WarrantyYears != wantWarranty {
			t.Errorf("%s: warranty = %d, want %d", o.Product.Model, o.WarrantyYears, wantWarranty)
		}
		if o.FinancingAvailable != (o.Product.Price > 1500) {
			t.Errorf("%s: financing = %v at price %.0f", o.Product.Model, o.FinancingAvailable, o.Product.Price)
		}
		if o.TCO.TenYearTotal <= o.Product.Price {
			t.Errorf("%s: TCO %.0f not above purchase price", o.Product.Model, o.TCO.TenYearTotal)
		}
		if len(o.Reasons) > 3 {
			t.Errorf("%s: %d reasons, want at most 3", o.Product.Model, len(o.Reasons))
		}
		if o.ConfidenceLabel == "" {
			t.Errorf("%s: missing confidence label", o.Product.Model)
		}
	}
}

func TestTradeInValueFloor(t *testing.T) {
	r := NewRanker(catalog.Default())

	// Cooktop base is 200 CHF; after enough years the floor of 10% holds.
	if got := r.tradeInValue("cooktop", 40); got != 20 {
		t.Errorf("trade-in at age 40 = %.2f, want 20", got)
	}
	if got := r.tradeInValue("cooktop", 0); got != 200 {
		t.Errorf("trade-in at age 0 = %.2f, want 200", got)
	}
	// Unknown categories fall back to the default base.
	if got := r.tradeInValue("microwave", 0); got != 200 {
		t.Errorf("trade-in for unknown category = %.2f, want 200", got)
	}
}
