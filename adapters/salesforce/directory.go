package salesforce

import (
	"context"
	"fmt"
	"log"

	"caseflow/domain/core"
	"caseflow/domain/servicecase"
)

// Directory simulates the Salesforce CRM. Profiles are static demo data; a
// real deployment would query the instance API instead.
type Directory struct{}

// NewDirectory creates a customer directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// GetProfile returns the customer profile for a reference. Unknown
// references still yield a usable profile so a case decision never blocks on
// CRM data.
func (d *Directory) GetProfile(ctx context.Context, customerRef string) (servicecase.CustomerProfile, error) {
	if customerRef == "" {
		customerRef = "default"
	}
	return servicecase.CustomerProfile{
		CustomerID:         "CUST_" + customerRef,
		Name:               "Premium Customer",
		Tier:               servicecase.TierGold,
		BrandLoyalty:       "V-Zug",
		PreferredBrands:    []string{"V-Zug", "Miele", "Bosch"},
		BudgetRange:        "premium",
		CommunicationPrefs: []string{"email"},
	}, nil
}

// CreateOpportunity registers a replacement sales opportunity.
func (d *Directory) CreateOpportunity(ctx context.Context, name string, estimatedValue float64) (string, error) {
	ref := fmt.Sprintf("OPP_%.8s", core.NewID().String())
	log.Printf("[Salesforce] opportunity %s created: %q (%.2f CHF)", ref, name, estimatedValue)
	return ref, nil
}
