package ranking

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"caseflow/domain/catalog"
	"caseflow/domain/servicecase"
)

const maxOffers = 3

// Budget headroom over the repair ceiling when filtering candidates. Old
// devices get more room because their ceiling already skews toward
// replacement economics.
const (
	standardBudgetMultiplier = 1.5
	extendedBudgetMultiplier = 2.0
	extendedBudgetAge        = 10
)

var stockScores = map[catalog.StockLevel]float64{
	catalog.StockHigh: 20,
	catalog.StockMed:  12,
	catalog.StockLow:  5,
	catalog.StockNone: 0,
}

var energyScores = map[string]float64{
	"A+++": 15,
	"A++":  12,
	"A+":   9,
	"A":    6,
	"B":    3,
}

var deliveryByStock = map[catalog.StockLevel]string{
	catalog.StockHigh: "1-2 weeks",
	catalog.StockMed:  "2-3 weeks",
	catalog.StockLow:  "3-4 weeks",
	catalog.StockNone: "4-6 weeks",
}

// Request carries everything the ranker needs for one case.
type Request struct {
	Category        string
	CostCeiling     float64
	DeviceAge       int
	PreferredBrands []string
	Candidates      []catalog.Product
}

// Ranker scores replacement candidates against a case's budget and customer
// preferences. It is stateless apart from the static catalog.
type Ranker struct {
	catalog *catalog.Catalog
}

// NewRanker creates a ranker on top of the static catalog.
func NewRanker(cat *catalog.Catalog) *Ranker {
	return &Ranker{catalog: cat}
}

// Rank filters, scores and decorates the candidates, returning at most three
// offers in descending score order.
func (r *Ranker) Rank(req Request) []servicecase.ReplacementOffer {
	budget := req.CostCeiling * standardBudgetMultiplier
	if req.DeviceAge > extendedBudgetAge {
		budget = req.CostCeiling * extendedBudgetMultiplier
	}

	affordable := make([]catalog.Product, 0, len(req.Candidates))
	for _, p := range req.Candidates {
		if p.Price <= budget {
			affordable = append(affordable, p)
		}
	}
	if len(affordable) == 0 {
		return nil
	}

	prices := make([]float64, len(affordable))
	maxMargin := 0.0
	for i, p := range affordable {
		prices[i] = p.Price
		if p.Margin > maxMargin {
			maxMargin = p.Margin
		}
	}
	avgPrice := stat.Mean(prices, nil)

	offers := make([]servicecase.ReplacementOffer, 0, len(affordable))
	for _, p := range affordable {
		offers = append(offers, r.score(p, req, avgPrice, maxMargin))
	}
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Score > offers[j].Score
	})
	if len(offers) > maxOffers {
		offers = offers[:maxOffers]
	}
	for i := range offers {
		offers[i].Rank = i + 1
	}
	return offers
}

func (r *Ranker) score(p catalog.Product, req Request, avgPrice, maxMargin float64) servicecase.ReplacementOffer {
	breakdown := make(map[string]string, 6)
	reasons := make([]string, 0, 6)
	total := 0.0

	brandScore := 10.0
	for _, b := range req.PreferredBrands {
		if b == p.Brand {
			brandScore = 25
			reasons = append(reasons, "Matches preferred brand "+p.Brand)
			break
		}
	}
	total += brandScore
	breakdown["brand_preference"] = fmt.Sprintf("%.0f/25", brandScore)

	marginScore := 0.0
	if maxMargin > 0 {
		marginScore = 25 * (p.Margin / maxMargin)
	}
	total += marginScore
	breakdown["margin"] = fmt.Sprintf("%.1f/25", marginScore)

	stockScore := stockScores[p.Stock]
	total += stockScore
	breakdown["availability"] = fmt.Sprintf("%.0f/20", stockScore)
	if p.Stock == catalog.StockHigh {
		reasons = append(reasons, "In stock for quick delivery")
	}

	energyScore := energyScores[p.EnergyRating]
	total += energyScore
	breakdown["energy_efficiency"] = fmt.Sprintf("%.0f/15", energyScore)
	if energyScore >= 12 {
		reasons = append(reasons, "Energy efficient ("+p.EnergyRating+")")
	}

	upgradeScore := 2.0
	switch {
	case req.DeviceAge > 8:
		upgradeScore = 10
		reasons = append(reasons, "Significant technology upgrade over current device")
	case req.DeviceAge > 4:
		upgradeScore = 6
	}
	total += upgradeScore
	breakdown["upgrade_value"] = fmt.Sprintf("%.0f/10", upgradeScore)

	priceScore := 1.0
	switch {
	case p.Price <= avgPrice*0.9:
		priceScore = 5
		reasons = append(reasons, "Competitively priced for its class")
	case p.Price <= avgPrice*1.1:
		priceScore = 3
	}
	total += priceScore
	breakdown["price_position"] = fmt.Sprintf("%.0f/5", priceScore)

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}

	label := "Standard"
	switch {
	case total > 70:
		label = "High"
	case total > 50:
		label = "Medium"
	}

	return servicecase.ReplacementOffer{
		Product:            p,
		Score:              total,
		ConfidenceLabel:    label,
		ScoringBreakdown:   breakdown,
		EstimatedDelivery:  deliveryByStock[p.Stock],
		WarrantyYears:      warrantyYears(p.Brand),
		TradeInValue:       r.tradeInValue(req.Category, req.DeviceAge),
		FinancingAvailable: p.Price > 1500,
		TCO:                tco(p),
		Reasons:            reasons,
	}
}

func warrantyYears(brand string) int {
	if catalog.PremiumBrand(brand) {
		return 3
	}
	return 2
}

// tradeInValue depreciates the category trade-in base by 15% per year with a
// 10% floor.
func (r *Ranker) tradeInValue(category string, age int) float64 {
	base := r.catalog.TradeInBase(category)
	factor := 1.0
	for i := 0; i < age; i++ {
		factor *= 0.85
	}
	if factor < 0.1 {
		factor = 0.1
	}
	return base * factor
}

// tco projects ten years of ownership: energy plus a flat maintenance
// allowance per year.
func tco(p catalog.Product) servicecase.TCOBreakdown {
	energyCost := 150.0
	if p.EnergyRating == "A+++" || p.EnergyRating == "A++" {
		energyCost = 120
	}
	annual := energyCost + 50
	tenYear := p.Price + 10*annual
	return servicecase.TCOBreakdown{
		InitialCost:         p.Price,
		AnnualOperatingCost: annual,
		TenYearTotal:        tenYear,
		MonthlyCost:         tenYear / 120,
	}
}
