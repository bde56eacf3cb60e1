package catalog

import "strings"

// StockLevel describes warehouse availability for a replacement product.
type StockLevel string

const (
	StockHigh  StockLevel = "high"
	StockMed   StockLevel = "medium"
	StockLow   StockLevel = "low"
	StockNone  StockLevel = "out_of_stock"
)

// ErrorSignature is a known failure pattern for a (category, brand) pair.
// Signatures are matched against free-text fault descriptions: the code as a
// case-insensitive substring, or any word of the description text.
type ErrorSignature struct {
	Code        string
	Description string
	RepairCost  float64
	SuccessRate float64
}

// ApplianceProfile holds the static failure table for one (category, brand).
type ApplianceProfile struct {
	WarrantyYears int
	AvgLifespan   int
	KnownErrors   []ErrorSignature
}

// Product is a replacement catalog entry.
type Product struct {
	Brand        string
	Model        string
	Price        float64
	Margin       float64
	Stock        StockLevel
	EnergyRating string
	Features     []string
}

// Catalog bundles the static configuration data the decision core consumes:
// appliance failure tables, replacement products and category price anchors.
// It is immutable after construction.
type Catalog struct {
	appliances  map[string]map[string]ApplianceProfile
	products    map[string][]Product
	basePrices  map[string]float64
	tradeInBase map[string]float64
}

const (
	defaultBasePrice   = 1800
	defaultTradeInBase = 200
	defaultWarranty    = 2
)

// New builds a catalog from the given tables. The maps are owned by the
// catalog after the call.
func New(
	appliances map[string]map[string]ApplianceProfile,
	products map[string][]Product,
	basePrices map[string]float64,
	tradeInBase map[string]float64,
) *Catalog {
	return &Catalog{
		appliances:  appliances,
		products:    products,
		basePrices:  basePrices,
		tradeInBase: tradeInBase,
	}
}

// Profile returns the failure table for a (category, brand) pair.
func (c *Catalog) Profile(category, brand string) (ApplianceProfile, bool) {
	brands, ok := c.appliances[strings.ToLower(category)]
	if !ok {
		return ApplianceProfile{}, false
	}
	p, ok := brands[brand]
	return p, ok
}

// WarrantyYears returns the brand's warranty period, defaulting to 2 years
// when the pair is unknown.
func (c *Catalog) WarrantyYears(category, brand string) int {
	if p, ok := c.Profile(category, brand); ok && p.WarrantyYears > 0 {
		return p.WarrantyYears
	}
	return defaultWarranty
}

// MatchError finds the first known signature matching the fault description.
// A signature matches when its code appears as a lowercase substring, or when
// any single word of its description text appears in the fault text.
func (c *Catalog) MatchError(category, brand, faultText string) (ErrorSignature, bool) {
	p, ok := c.Profile(category, brand)
	if !ok {
		return ErrorSignature{}, false
	}
	fault := strings.ToLower(faultText)
	for _, sig := range p.KnownErrors {
		if strings.Contains(fault, strings.ToLower(sig.Code)) {
			return sig, true
		}
		for _, word := range strings.Fields(strings.ToLower(sig.Description)) {
			if strings.Contains(fault, word) {
				return sig, true
			}
		}
	}
	return ErrorSignature{}, false
}

// Products returns the replacement candidates for a category.
func (c *Catalog) Products(category string) []Product {
	return c.products[strings.ToLower(category)]
}

// OriginalPrice returns the typical new price for a category, used as the
// depreciation anchor.
func (c *Catalog) OriginalPrice(category string) float64 {
	if v, ok := c.basePrices[strings.ToLower(category)]; ok {
		return v
	}
	return defaultBasePrice
}

// TradeInBase returns the category base value for trade-in estimation.
func (c *Catalog) TradeInBase(category string) float64 {
	if v, ok := c.tradeInBase[strings.ToLower(category)]; ok {
		return v
	}
	return defaultTradeInBase
}

// PremiumBrand reports whether a brand carries the extended 3-year warranty.
func PremiumBrand(brand string) bool {
	return brand == "V-Zug" || brand == "Miele"
}
