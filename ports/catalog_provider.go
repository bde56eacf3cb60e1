package ports

import (
	"context"

	"caseflow/domain/catalog"
	"caseflow/domain/servicecase"
)

// CatalogProvider exposes product-information-management data: current
// device specifications and replacement candidates per category.
type CatalogProvider interface {
	// DeviceSpecs returns the specification snapshot for an installed
	// device, including its depreciation anchor price.
	DeviceSpecs(ctx context.Context, category, brand string, age int) (servicecase.SpecSnapshot, error)

	// ReplacementCandidates lists catalog products for a category.
	ReplacementCandidates(ctx context.Context, category string) ([]catalog.Product, error)
}
