package pipeline

import (
	"time"

	"caseflow/domain/catalog"
	"caseflow/domain/servicecase"
	"caseflow/internal/ranking"
)

// EnrichmentData carries everything fetched from the collaborator systems
// before the pipeline runs. Fetches happen up front (app layer) so every
// stage stays a pure function; the struct is read-only from here on.
type EnrichmentData struct {
	Estimate   servicecase.CostEstimate
	Customer   servicecase.CustomerProfile
	Specs      servicecase.SpecSnapshot
	Candidates []catalog.Product
}

// Stages bundles the five stage functions with their immutable configuration
// (failure tables, ranker, clock). Every stage method is deterministic for a
// given record and performs no I/O.
type Stages struct {
	catalog *catalog.Catalog
	ranker  *ranking.Ranker
	now     func() time.Time
}

// NewStages creates the stage set on top of the static catalog.
func NewStages(cat *catalog.Catalog, ranker *ranking.Ranker) *Stages {
	return &Stages{catalog: cat, ranker: ranker, now: time.Now}
}

// WithClock overrides the timestamp source, mainly for tests.
func (s *Stages) WithClock(now func() time.Time) *Stages {
	s.now = now
	return s
}
