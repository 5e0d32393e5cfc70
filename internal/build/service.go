package build

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/docs"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navtree"
	"git.home.luguber.info/inful/docnav/internal/observability"
	"git.home.luguber.info/inful/docnav/internal/outline"
)

// Stage names used in logs.
const (
	StageLoadOutline = "load_outline"
	StageBuildTree   = "build_tree"
	StageCheckDocs   = "check_docs"
)

// Request contains the inputs of one build.
type Request struct {
	Config *config.Config
	// BuildID identifies the run in logs; a random UUID is used when empty.
	BuildID string
	// CheckDocs also loads the docs directory and runs docs.Checker.
	CheckDocs bool
}

// Status is the outcome of a build.
type Status string

const (
	StatusSuccess Status = "success"
	// StatusDegraded means the tree was built but the docs check reported findings.
	StatusDegraded Status = "degraded"
	StatusFailed   Status = "failed"
)

// IsSuccess reports whether a tree was produced.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess || s == StatusDegraded
}

// Result is the outcome of Service.Run.
type Result struct {
	BuildID  string
	Status   Status
	Sidebar  string
	Sidebars []string
	Tree     *navtree.Tree
	Stats    navtree.Stats
	Check    *docs.Report

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Service executes builds.
type Service struct {
	recorder metrics.Recorder
	now      func() time.Time
}

// NewService returns a Service that records nothing.
func NewService() *Service {
	return &Service{recorder: metrics.NoopRecorder{}, now: time.Now}
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// Run executes the pipeline. On failure the returned Result is still populated
// with timing and status so callers can report it.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := s.now()
	res := &Result{BuildID: req.BuildID, StartTime: start}
	if res.BuildID == "" {
		res.BuildID = uuid.NewString()
	}
	ctx = observability.WithBuildID(ctx, res.BuildID)

	if req.Config == nil {
		return s.fail(ctx, res, ferrors.ConfigError("config required").Build())
	}
	cfg := req.Config
	res.Sidebar = cfg.Sidebar

	if err := ctx.Err(); err != nil {
		return s.fail(ctx, res, ferrors.RuntimeError("build cancelled").WithCause(err).Build())
	}

	stageCtx := observability.WithStage(ctx, StageLoadOutline)
	file, err := outline.Load(cfg.OutlinePath())
	if err != nil {
		return s.fail(stageCtx, res, err)
	}
	res.Sidebars = file.Names()
	observability.DebugContext(stageCtx, "Outline loaded", logfields.Path(file.Path), logfields.Count(len(res.Sidebars)))

	stageCtx = observability.WithStage(ctx, StageBuildTree)
	tree, sb, err := file.Build(cfg.Sidebar)
	if sb.Name != "" {
		res.Sidebar = sb.Name
		ctx = observability.WithSidebar(ctx, sb.Name)
		stageCtx = observability.WithSidebar(stageCtx, sb.Name)
	}
	if err != nil {
		return s.fail(stageCtx, res, err)
	}
	res.Tree = tree
	res.Stats = tree.Stats()
	res.Status = StatusSuccess

	if req.CheckDocs {
		stageCtx = observability.WithStage(ctx, StageCheckDocs)
		set, err := docs.Load(cfg.DocsPath())
		if err != nil {
			return s.fail(stageCtx, res, err)
		}
		report := docs.Checker{Recorder: s.recorder}.Check(stageCtx, tree, set)
		res.Check = &report
		if report.Warnings() > 0 {
			res.Status = StatusDegraded
		}
	}

	s.finish(res)
	s.recorder.SetTreeShape(res.Sidebar, res.Stats.Docs, res.Stats.Categories, res.Stats.MaxDepth)
	s.recorder.IncBuildOutcome(res.Sidebar, outcomeOf(res.Status))
	s.recorder.ObserveBuildDuration(res.Sidebar, res.Duration)

	observability.InfoContext(ctx, "Navigation tree built",
		slog.String("status", string(res.Status)),
		slog.Int("docs", res.Stats.Docs),
		slog.Int("categories", res.Stats.Categories),
		slog.Int("max_depth", res.Stats.MaxDepth),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	return res, nil
}

func (s *Service) fail(ctx context.Context, res *Result, err error) (*Result, error) {
	res.Status = StatusFailed
	s.finish(res)
	s.recorder.IncBuildOutcome(res.Sidebar, metrics.OutcomeFailed)
	s.recorder.ObserveBuildDuration(res.Sidebar, res.Duration)
	observability.DebugContext(ctx, "Build failed", logfields.Error(err))
	return res, err
}

func (s *Service) finish(res *Result) {
	res.EndTime = s.now()
	res.Duration = res.EndTime.Sub(res.StartTime)
}

func outcomeOf(status Status) metrics.Outcome {
	switch status {
	case StatusSuccess:
		return metrics.OutcomeSuccess
	case StatusDegraded:
		return metrics.OutcomeDegraded
	default:
		return metrics.OutcomeFailed
	}
}
