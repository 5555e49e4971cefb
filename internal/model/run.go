package model

import "time"

// Run carries the state of one crawl through the pipeline.
//
// Design decision: Like a scan report, the run is a single mutable struct that
// every pipeline step reads and extends. Steps record outcomes here instead of
// returning rich values, so adding a step never changes the Step interface.
type Run struct {
	// ID is the archive row id once the run has been archived, otherwise 0.
	ID int64 `json:"id,omitempty"`

	// BaseURL is the listing page the crawl started from.
	BaseURL string `json:"base_url"`

	// StartedAt and FinishedAt bracket the crawl step.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Directory is the collected tree. It may be non-empty even when Err is
	// set, in which case Partial is true.
	Directory Directory `json:"directory"`

	// Partial is true when the crawl ended with a run-level failure.
	Partial bool `json:"partial"`

	// Err is the run-level failure, if any. It is not serialized.
	Err error `json:"-"`

	// ErrorMessage mirrors Err for serialization.
	ErrorMessage string `json:"error,omitempty"`

	// OutputPath is set once the JSON document has been written.
	OutputPath string `json:"output_path,omitempty"`

	// PerformedSteps lists the names of the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewRun creates a Run for the given listing URL.
func NewRun(baseURL string) *Run {
	return &Run{
		BaseURL:   baseURL,
		Directory: Directory{},
	}
}

// Fail records a run-level failure. The first failure wins; later ones
// are usually consequences of it.
func (r *Run) Fail(err error) {
	if err == nil || r.Err != nil {
		return
	}
	r.Err = err
	r.ErrorMessage = err.Error()
	r.Partial = true
}

// Duration is the wall time of the crawl step.
func (r *Run) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Stats is shorthand for r.Directory.Stats().
func (r *Run) Stats() Stats {
	return r.Directory.Stats()
}

// RunInfo describes an archived run without its directory.
type RunInfo struct {
	ID           int64
	BaseURL      string
	StartedAt    time.Time
	FinishedAt   time.Time
	Partial      bool
	ErrorMessage string
	Stats        Stats
}

// Info returns the archive summary of r.
func (r *Run) Info() RunInfo {
	return RunInfo{
		ID:           r.ID,
		BaseURL:      r.BaseURL,
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
		Partial:      r.Partial,
		ErrorMessage: r.ErrorMessage,
		Stats:        r.Stats(),
	}
}
