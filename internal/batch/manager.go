package batch

import (
	"context"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"caseflow/domain/core"
	"caseflow/domain/servicecase"
	"caseflow/internal"
	"caseflow/internal/errors"
	"caseflow/ports"
)

// Processor decides a single case. Implemented by the case service.
type Processor interface {
	Process(ctx context.Context, inputs servicecase.CaseInputs) (servicecase.Decision, error)
}

// Status of a batch job.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

// Result is the per-case outcome inside a batch.
type Result struct {
	Index    int                    `json:"index"`
	Inputs   servicecase.CaseInputs `json:"inputs"`
	Decision *servicecase.Decision  `json:"decision,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// Summary aggregates a completed batch.
type Summary struct {
	Total            int            `json:"total_cases"`
	Succeeded        int            `json:"succeeded"`
	Failed           int            `json:"failed"`
	MeanConfidence   float64        `json:"mean_confidence"`
	MedianConfidence float64        `json:"median_confidence"`
	Recommendations  map[string]int `json:"recommendation_counts"`
	DurationMs       int64          `json:"duration_ms"`
}

// Job is the externally visible state of one batch run.
type Job struct {
	ID        core.BatchJobID `json:"job_id"`
	Status    Status          `json:"status"`
	Total     int             `json:"total_cases"`
	Completed int             `json:"completed_cases"`
	Results   []Result        `json:"results,omitempty"`
	Summary   *Summary        `json:"summary,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Manager runs batches with bounded concurrency and keeps finished jobs in
// memory for status polling.
type Manager struct {
	mu          sync.RWMutex
	jobs        map[core.BatchJobID]*Job
	processor   Processor
	notifier    ports.Notifier
	concurrency int
	logger      *internal.Logger
}

// NewManager wires a batch manager around the case processor.
func NewManager(processor Processor, notifier ports.Notifier, concurrency int, logger *internal.Logger) *Manager {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Manager{
		jobs:        make(map[core.BatchJobID]*Job),
		processor:   processor,
		notifier:    notifier,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Submit registers a new job and starts processing it in the background. The
// job outlives the submitting request.
func (m *Manager) Submit(ctx context.Context, cases []servicecase.CaseInputs) (core.BatchJobID, error) {
	if len(cases) == 0 {
		return "", errors.ValidationError("batch contains no cases")
	}

	job := &Job{
		ID:        core.BatchJobID(core.NewID()),
		Status:    StatusQueued,
		Total:     len(cases),
		Results:   make([]Result, len(cases)),
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	go m.run(context.WithoutCancel(ctx), job.ID, cases)
	m.logger.Info("[Batch] job %s queued with %d cases", job.ID, len(cases))
	return job.ID, nil
}

// Job returns a snapshot of the job state.
func (m *Manager) Job(id core.BatchJobID) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	snapshot := *job
	snapshot.Results = append([]Result(nil), job.Results...)
	if job.Summary != nil {
		s := *job.Summary
		snapshot.Summary = &s
	}
	return snapshot, true
}

func (m *Manager) run(ctx context.Context, id core.BatchJobID, cases []servicecase.CaseInputs) {
	started := time.Now()
	m.setStatus(id, StatusProcessing)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, inputs := range cases {
		g.Go(func() error {
			result := Result{Index: i, Inputs: inputs}
			decision, err := m.processor.Process(gctx, inputs)
			if err != nil {
				result.Error = err.Error()
			} else {
				result.Decision = &decision
			}
			m.record(id, result)
			return nil
		})
	}
	g.Wait()

	m.finish(id, time.Since(started))
}

func (m *Manager) setStatus(id core.BatchJobID, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[id]; ok {
		job.Status = status
	}
}

func (m *Manager) record(id core.BatchJobID, result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return
	}
	job.Results[result.Index] = result
	job.Completed++
}

func (m *Manager) finish(id core.BatchJobID, elapsed time.Duration) {
	m.mu.Lock()
	job, ok := m.jobs[id]
	if !ok {
		m.mu.Unlock()
		return
	}

	summary := Summary{
		Total:           job.Total,
		Recommendations: make(map[string]int),
		DurationMs:      elapsed.Milliseconds(),
	}
	confidences := make([]float64, 0, len(job.Results))
	for _, r := range job.Results {
		if r.Error != "" || r.Decision == nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Recommendations[string(r.Decision.Recommendation)]++
		confidences = append(confidences, r.Decision.Confidence)
	}
	if len(confidences) > 0 {
		summary.MeanConfidence, _ = stats.Mean(confidences)
		summary.MedianConfidence, _ = stats.Median(confidences)
	}
	job.Summary = &summary
	job.Status = StatusCompleted
	m.mu.Unlock()

	m.logger.Info("[Batch] job %s completed: %d ok, %d failed in %s", id, summary.Succeeded, summary.Failed, elapsed)
	if m.notifier != nil {
		err := m.notifier.Notify(context.Background(), "batch_completion", map[string]interface{}{
			"job_id":      string(id),
			"total_cases": summary.Total,
			"succeeded":   summary.Succeeded,
			"failed":      summary.Failed,
		})
		if err != nil {
			m.logger.Warn("[Batch] completion notification failed: %v", err)
		}
	}
}
