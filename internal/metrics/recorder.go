package metrics

import "time"

// Outcome enumerates result labels for counters.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeFailed       Outcome = "failed"
	OutcomeDegraded     Outcome = "degraded"
	OutcomeDefaultsOnly Outcome = "defaults_only"
)

// Recorder defines observability hooks for tree builds and prerequisite merges.
type Recorder interface {
	ObserveBuildDuration(sidebar string, d time.Duration)
	IncBuildOutcome(sidebar string, outcome Outcome)
	SetTreeShape(sidebar string, docs, categories, maxDepth int)
	IncMergeOutcome(outcome Outcome)
	IncBrokenReference(kind string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(string, time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string, Outcome)            {}
func (NoopRecorder) SetTreeShape(string, int, int, int)         {}
func (NoopRecorder) IncMergeOutcome(Outcome)                    {}
func (NoopRecorder) IncBrokenReference(string)                  {}
