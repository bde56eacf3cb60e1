package pim

import (
	"context"
	"math"

	"caseflow/domain/catalog"
	"caseflow/domain/servicecase"
)

// Annual depreciation applied to the category anchor price. The market value
// never drops below 10% of the original.
const (
	depreciationRate = 0.08
	residualShare    = 0.10
)

// Provider simulates the product-information-management system: device
// specifications derived from the static catalog plus the replacement
// candidate list.
type Provider struct {
	catalog *catalog.Catalog
}

// NewProvider creates a catalog/specs provider.
func NewProvider(cat *catalog.Catalog) *Provider {
	return &Provider{catalog: cat}
}

// DeviceSpecs returns the specification snapshot for an installed device.
func (p *Provider) DeviceSpecs(ctx context.Context, category, brand string, age int) (servicecase.SpecSnapshot, error) {
	original := p.catalog.OriginalPrice(category)
	value := original * math.Pow(1-depreciationRate, float64(age))
	value = math.Max(value, original*residualShare)

	rating := "A"
	if age < 5 {
		rating = "A+"
	}

	remaining := 0.0
	if warranty := p.catalog.WarrantyYears(category, brand); age <= warranty {
		remaining = float64(warranty - age)
	}

	return servicecase.SpecSnapshot{
		OriginalPrice:      original,
		CurrentMarketValue: value,
		EnergyRating:       rating,
		WarrantyRemaining:  remaining,
	}, nil
}

// ReplacementCandidates lists catalog products for a category.
func (p *Provider) ReplacementCandidates(ctx context.Context, category string) ([]catalog.Product, error) {
	return p.catalog.Products(category), nil
}
