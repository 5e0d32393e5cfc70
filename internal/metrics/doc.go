// Package metrics provides build and render metrics for docnav.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay
// optional and callers never nil-check:
//
//	merger := prereq.NewMerger(prereq.WithRecorder(recorder))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// docnav runs as a short-lived CLI, so instead of serving /metrics it writes the
// registry to a node_exporter textfile with WriteTextfile.
package metrics
