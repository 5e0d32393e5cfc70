package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prom.Registry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docnav.prom")
	require.NoError(t, WriteTextfile(reg, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveBuildDuration("docs", 2*time.Millisecond)
	pr.IncBuildOutcome("docs", OutcomeSuccess)
	pr.SetTreeShape("docs", 12, 4, 3)
	pr.IncMergeOutcome(OutcomeDegraded)
	pr.IncMergeOutcome(OutcomeDegraded)
	pr.IncBrokenReference("missing_body")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	out := scrape(t, reg)
	require.Contains(t, out, `docnav_prerequisite_merges_total{outcome="degraded"} 2`)
	require.Contains(t, out, `docnav_tree_docs{sidebar="docs"} 12`)
	require.Contains(t, out, `docnav_tree_categories{sidebar="docs"} 4`)
	require.Contains(t, out, `docnav_tree_max_depth{sidebar="docs"} 3`)
	require.Contains(t, out, `docnav_tree_build_outcomes_total{outcome="success",sidebar="docs"} 1`)
	require.Contains(t, out, `docnav_broken_references_total{kind="missing_body"} 1`)
	require.Contains(t, out, `docnav_tree_build_duration_seconds_count{sidebar="docs"} 1`)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveBuildDuration("docs", time.Second)
	pr.IncBuildOutcome("docs", OutcomeFailed)
	pr.SetTreeShape("docs", 1, 1, 1)
	pr.IncMergeOutcome(OutcomeSuccess)
	pr.IncBrokenReference("unknown_link")
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome("docs", OutcomeFailed)

	out := scrape(t, reg)
	require.Contains(t, out, "# TYPE docnav_tree_build_outcomes_total counter")
	require.Contains(t, out, `docnav_tree_build_outcomes_total{outcome="failed",sidebar="docs"} 1`)
}
