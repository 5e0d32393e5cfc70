package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docnav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration  *prom.HistogramVec
	buildOutcome   *prom.CounterVec
	treeDocs       *prom.GaugeVec
	treeCategories *prom.GaugeVec
	treeDepth      *prom.GaugeVec
	mergeOutcome   *prom.CounterVec
	brokenRefs     *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "tree_build_duration_seconds",
			Help:      "Duration of navigation tree builds",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"sidebar"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tree_build_outcomes_total",
			Help:      "Navigation tree builds by outcome",
		}, []string{"sidebar", "outcome"}),
		treeDocs: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_docs",
			Help:      "Document references in the last built tree",
		}, []string{"sidebar"}),
		treeCategories: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_categories",
			Help:      "Categories in the last built tree",
		}, []string{"sidebar"}),
		treeDepth: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_max_depth",
			Help:      "Deepest nesting level in the last built tree",
		}, []string{"sidebar"}),
		mergeOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "prerequisite_merges_total",
			Help:      "Prerequisite block merges by outcome",
		}, []string{"outcome"}),
		brokenRefs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "broken_references_total",
			Help:      "Unresolved document references found by check",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.treeDocs, pr.treeCategories, pr.treeDepth, pr.mergeOutcome, pr.brokenRefs)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(sidebar string, d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.WithLabelValues(sidebar).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(sidebar string, outcome Outcome) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(sidebar, string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetTreeShape(sidebar string, docs, categories, maxDepth int) {
	if p == nil {
		return
	}
	p.treeDocs.WithLabelValues(sidebar).Set(float64(docs))
	p.treeCategories.WithLabelValues(sidebar).Set(float64(categories))
	p.treeDepth.WithLabelValues(sidebar).Set(float64(maxDepth))
}

func (p *PrometheusRecorder) IncMergeOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.mergeOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncBrokenReference(kind string) {
	if p == nil {
		return
	}
	p.brokenRefs.WithLabelValues(kind).Inc()
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format (for the node_exporter textfile collector).
func WriteTextfile(g prom.Gatherer, path string) error {
	return prom.WriteToTextfile(path, g)
}
