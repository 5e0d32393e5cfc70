package prereq

import (
	"context"
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

// PlaceholderMessage is the text of the item substituted for malformed content.
const PlaceholderMessage = "The Prerequisites box only accepts a markdown bullet list. Fix the list in this page's source."

// Block is the ordered list of requirement items for one page.
type Block struct {
	Items []Item
	// Degraded is set when supplied content was malformed and replaced by a placeholder.
	Degraded bool
	Err      *MalformedInputError
}

// Plain returns the items as plain strings.
func (b Block) Plain() []string {
	out := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		out = append(out, it.Plain())
	}
	return out
}

// Diagnostic is emitted once for each malformed prerequisites block.
type Diagnostic struct {
	Source string
	Err    *MalformedInputError
}

// Reporter receives diagnostics from Merge.
type Reporter interface {
	Report(ctx context.Context, d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, d Diagnostic)

func (f ReporterFunc) Report(ctx context.Context, d Diagnostic) { f(ctx, d) }

// SlogReporter logs diagnostics as warnings.
type SlogReporter struct {
	Logger *slog.Logger
}

func (r SlogReporter) Report(ctx context.Context, d Diagnostic) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []slog.Attr{logfields.Reason(d.Err.Reason), slog.String("node", d.Err.Kind)}
	if d.Source != "" {
		attrs = append(attrs, logfields.File(d.Source))
	}
	if d.Err.Line > 0 {
		attrs = append(attrs, slog.Int("line", d.Err.Line))
	}
	logger.LogAttrs(ctx, slog.LevelWarn, "Malformed prerequisites block", attrs...)
}

// Merger combines default items with author-supplied list content. It holds no
// per-call state and is safe for concurrent use.
type Merger struct {
	reporter Reporter
	recorder metrics.Recorder
	source   string
}

// Option configures a Merger.
type Option func(*Merger)

// WithReporter sets the diagnostic sink.
func WithReporter(r Reporter) Option {
	return func(m *Merger) { m.reporter = r }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(m *Merger) { m.recorder = r }
}

// WithSource names the page being rendered in diagnostics.
func WithSource(name string) Option {
	return func(m *Merger) { m.source = name }
}

// NewMerger returns a Merger that logs diagnostics through slog by default.
func NewMerger(opts ...Option) *Merger {
	m := &Merger{reporter: SlogReporter{}, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge returns defaults followed by the items of supplied.
//
// A nil supplied means the page declared no extra prerequisites and yields
// exactly the defaults. Malformed content yields defaults plus one placeholder
// item, and one diagnostic is reported.
func (m *Merger) Merge(ctx context.Context, defaults []Item, supplied *markdown.Document) Block {
	items := slices.Clone(defaults)
	if supplied.Blank() {
		m.recorder.IncMergeOutcome(metrics.OutcomeDefaultsOnly)
		return Block{Items: items}
	}

	extracted, err := extractItems(supplied)
	if err != nil {
		bad := asMalformed(err)
		m.reporter.Report(ctx, Diagnostic{Source: m.source, Err: bad})
		m.recorder.IncMergeOutcome(metrics.OutcomeDegraded)
		return Block{Items: append(items, Placeholder()), Degraded: true, Err: bad}
	}

	m.recorder.IncMergeOutcome(metrics.OutcomeSuccess)
	return Block{Items: append(items, extracted...)}
}

// Merge is a convenience wrapper around a default Merger.
func Merge(ctx context.Context, defaults []Item, supplied *markdown.Document) Block {
	return NewMerger().Merge(ctx, defaults, supplied)
}

// Placeholder returns the item shown instead of malformed content.
func Placeholder() Item {
	return Item{
		Inlines:  []Inline{Emphasis{Level: 2, Children: []Inline{Text{Value: PlaceholderMessage}}}},
		Degraded: true,
	}
}

func asMalformed(err error) *MalformedInputError {
	if bad, ok := err.(*MalformedInputError); ok {
		return bad
	}
	return &MalformedInputError{Reason: err.Error()}
}
