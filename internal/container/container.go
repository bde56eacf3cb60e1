package container

import (
	"caseflow/adapters/msgraph"
	"caseflow/adapters/pim"
	"caseflow/adapters/rng"
	"caseflow/adapters/salesforce"
	"caseflow/adapters/sap"
	"caseflow/app"
	"caseflow/domain/catalog"
	"caseflow/internal"
	"caseflow/internal/batch"
	"caseflow/internal/config"
	"caseflow/internal/pipeline"
	"caseflow/internal/ranking"
	"caseflow/internal/rules"
)

// Container holds the wired application dependencies and manages their
// lifecycle.
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Catalog *catalog.Catalog
	Rules   *rules.Provider

	CaseService *app.CaseService
	Batch       *batch.Manager
}

// New wires the full dependency graph from configuration.
func New(cfg *config.Config) (*Container, error) {
	logger := internal.NewDefaultLogger()

	cat := catalog.Default()
	ranker := ranking.NewRanker(cat)
	stages := pipeline.NewStages(cat, ranker)
	orchestrator := pipeline.NewOrchestrator(stages, cfg.Pipeline.Timeout, logger)

	ruleProvider, err := rules.NewProvider(cfg.Rules.File, cfg.Rules.Watch, logger)
	if err != nil {
		return nil, err
	}

	estimator := sap.NewEstimator(cat, rng.NewAdapter(), cfg.Cost.JitterSeed)
	directory := salesforce.NewDirectory()
	provider := pim.NewProvider(cat)
	notifier := msgraph.NewNotifier()

	caseService := app.NewCaseService(
		orchestrator, stages,
		estimator, directory, provider, notifier,
		ruleProvider, logger,
	)
	batchMgr := batch.NewManager(caseService, notifier, cfg.Batch.Concurrency, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Catalog:     cat,
		Rules:       ruleProvider,
		CaseService: caseService,
		Batch:       batchMgr,
	}, nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.Rules != nil {
		return c.Rules.Close()
	}
	return nil
}
