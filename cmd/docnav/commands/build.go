package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/build"
	"git.home.luguber.info/inful/docnav/internal/config"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navtree"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Format string `short:"f" help:"Output format (text|json)" enum:"text,json" default:"text"`
	Check  bool   `help:"Also check documents in docs_dir"`
	Watch  bool   `short:"w" help:"Rebuild when the configuration or outline changes"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if !b.Watch {
		_, err := b.buildOnce(context.Background(), g.Out, cfg)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return b.watch(ctx, g.Out, root, cfg)
}

// buildOnce runs one build, prints it and exports metrics when configured.
func (b *BuildCmd) buildOnce(ctx context.Context, out io.Writer, cfg *config.Config) (*build.Result, error) {
	var (
		reg *prom.Registry
		rec metrics.Recorder = metrics.NoopRecorder{}
	)
	if cfg.MetricsTextfile() != "" {
		reg = prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
	}

	res, err := build.NewService().WithRecorder(rec).Run(ctx, build.Request{Config: cfg, CheckDocs: b.Check})

	if reg != nil {
		if werr := metrics.WriteTextfile(reg, cfg.MetricsTextfile()); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.MetricsTextfile()), logfields.Error(werr))
		}
	}
	if err != nil {
		return res, err
	}
	return res, printBuild(out, b.Format, res)
}

func (b *BuildCmd) watch(ctx context.Context, out io.Writer, root *CLI, cfg *config.Config) error {
	if _, err := b.buildOnce(ctx, out, cfg); err != nil {
		slog.Error("Initial build failed", failureAttrs(err)...)
	}

	files := []string{cfg.OutlinePath()}
	if _, err := os.Stat(root.Config); err == nil {
		files = append(files, root.Config)
	}
	w, err := watch.New(files, watch.DefaultDebounce, func(ctx context.Context, changed []string) {
		slog.Info("Change detected, rebuilding", slog.String("files", strings.Join(changed, ",")))
		current, err := root.loadConfig()
		if err != nil {
			slog.Error("Failed to reload configuration", logfields.Error(err))
			return
		}
		if current.OutlinePath() != cfg.OutlinePath() {
			slog.Warn("Outline path changed; restart to watch the new file", logfields.Path(current.OutlinePath()))
		}
		if _, err := b.buildOnce(ctx, out, current); err != nil {
			slog.Error("Rebuild failed", failureAttrs(err)...)
		}
	})
	if err != nil {
		return err
	}
	slog.Info("Watching for changes", slog.String("files", strings.Join(files, ",")))
	return w.Run(ctx)
}

// failureAttrs describes a failed build in watch mode, where errors are logged
// instead of ending the process.
func failureAttrs(err error) []any {
	return []any{
		logfields.Error(err),
		slog.String("category", string(ferrors.GetCategory(err))),
		slog.String("severity", string(ferrors.GetSeverity(err))),
	}
}

type buildJSON struct {
	BuildID  string         `json:"build_id"`
	Status   string         `json:"status"`
	Sidebar  string         `json:"sidebar"`
	Sidebars []string       `json:"sidebars"`
	Stats    statsJSON      `json:"stats"`
	Items    []navtree.Decl `json:"items"`
	Warnings int            `json:"warnings,omitempty"`
}

type statsJSON struct {
	Docs            int `json:"docs"`
	Categories      int `json:"categories"`
	EmptyCategories int `json:"empty_categories"`
	MaxDepth        int `json:"max_depth"`
}

func printBuild(out io.Writer, format string, res *build.Result) error {
	if format == "json" {
		doc := buildJSON{
			BuildID:  res.BuildID,
			Status:   string(res.Status),
			Sidebar:  res.Sidebar,
			Sidebars: res.Sidebars,
			Stats: statsJSON{
				Docs:            res.Stats.Docs,
				Categories:      res.Stats.Categories,
				EmptyCategories: res.Stats.EmptyCategories,
				MaxDepth:        res.Stats.MaxDepth,
			},
			Items: res.Tree.Outline(),
		}
		if res.Check != nil {
			doc.Warnings = res.Check.Warnings()
		}
		return writeJSON(out, doc)
	}

	_, _ = fmt.Fprintf(out, "%s: %d docs, %d categories, depth %d\n",
		res.Sidebar, res.Stats.Docs, res.Stats.Categories, res.Stats.MaxDepth)
	writeNodes(out, res.Tree.Nodes(), 0)
	if res.Check != nil {
		_, _ = fmt.Fprintf(out, "check: %d warnings\n", res.Check.Warnings())
	}
	return nil
}

func writeNodes(out io.Writer, nodes []navtree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		switch v := n.(type) {
		case navtree.DocRef:
			_, _ = fmt.Fprintf(out, "%s- %s [%s]\n", indent, v.DisplayLabel(), v.ID())
		case *navtree.Category:
			suffix := ""
			if collapsed, set := v.Collapsed(); set && collapsed {
				suffix = " (collapsed)"
			}
			_, _ = fmt.Fprintf(out, "%s+ %s%s\n", indent, v.Label(), suffix)
			writeNodes(out, v.Items(), depth+1)
		}
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
