package docs

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/navtree"
	"git.home.luguber.info/inful/docnav/internal/prereq"
)

// RouteBasePath is the URL prefix under which document ids are served.
const RouteBasePath = "/docs/"

// IssueKind classifies a Check finding.
type IssueKind string

const (
	// IssueMissingBody is a tree leaf with no document in the docs directory.
	IssueMissingBody IssueKind = "missing_body"
	// IssueBrokenLink is a document link whose target is not in the tree.
	IssueBrokenLink IssueKind = "broken_link"
	// IssueMalformedPrerequisites is a <Prerequisites> block that is not a bullet list.
	IssueMalformedPrerequisites IssueKind = "malformed_prerequisites"
	// IssueUnlisted is a document that no sidebar entry references.
	IssueUnlisted IssueKind = "unlisted"
)

// Issue is one Check finding. None of them stop a build.
type Issue struct {
	Kind   IssueKind
	DocID  string
	File   string
	Line   int
	Target string
	Detail string
}

// Report is the result of Check.
type Report struct {
	Leaves int
	Docs   int
	Issues []Issue
}

// Count returns the number of issues of the given kind.
func (r Report) Count(kind IssueKind) int {
	n := 0
	for _, is := range r.Issues {
		if is.Kind == kind {
			n++
		}
	}
	return n
}

// Warnings returns the number of issues other than unlisted documents.
func (r Report) Warnings() int {
	return len(r.Issues) - r.Count(IssueUnlisted)
}

// Checker cross-checks a tree against loaded documents.
type Checker struct {
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Check reports tree leaves without a document, links to ids outside the tree,
// malformed prerequisites blocks and documents missing from the tree.
func (c Checker) Check(ctx context.Context, tree *navtree.Tree, set *Set) Report {
	rec := c.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var rep Report
	rep.Docs = set.Len()
	add := func(is Issue) {
		rep.Issues = append(rep.Issues, is)
		attrs := []slog.Attr{slog.String("kind", string(is.Kind)), logfields.DocID(is.DocID)}
		if is.File != "" {
			attrs = append(attrs, logfields.File(is.File))
		}
		if is.Line > 0 {
			attrs = append(attrs, slog.Int("line", is.Line))
		}
		if is.Target != "" {
			attrs = append(attrs, slog.String("target", is.Target))
		}
		if is.Detail != "" {
			attrs = append(attrs, logfields.Reason(is.Detail))
		}
		if is.Kind == IssueUnlisted {
			logger.LogAttrs(ctx, slog.LevelDebug, "Document not in sidebar", attrs...)
			return
		}
		rec.IncBrokenReference(string(is.Kind))
		logger.LogAttrs(ctx, slog.LevelWarn, "Documentation check finding", attrs...)
	}

	listed := map[string]bool{}
	for e := range tree.Flatten() {
		rep.Leaves++
		id := e.Doc.ID()
		listed[id] = true
		if _, ok := set.Get(id); !ok {
			add(Issue{Kind: IssueMissingBody, DocID: id, Detail: e.Breadcrumb()})
		}
	}

	for _, id := range set.IDs() {
		doc, _ := set.Get(id)
		if !listed[id] {
			add(Issue{Kind: IssueUnlisted, DocID: id, File: doc.RelativePath})
		}
		c.checkLinks(tree, set, doc, add)
		c.checkPrerequisites(ctx, doc, add)
	}
	return rep
}

func (c Checker) checkLinks(tree *navtree.Tree, set *Set, doc *DocFile, add func(Issue)) {
	links, err := markdown.ExtractLinks(doc.Body, markdown.Options{})
	if err != nil {
		add(Issue{Kind: IssueBrokenLink, DocID: doc.ID, File: doc.RelativePath, Detail: err.Error()})
		return
	}
	for _, l := range links {
		target, ok := linkedID(set, doc, l)
		if !ok {
			continue
		}
		if _, found := tree.Resolve(target); !found {
			add(Issue{Kind: IssueBrokenLink, DocID: doc.ID, File: doc.RelativePath, Target: l.Destination})
		}
	}
}

func (c Checker) checkPrerequisites(ctx context.Context, doc *DocFile, add func(Issue)) {
	for _, occ := range prereq.FindBlocks(doc.Body) {
		line := doc.BodyLine + occ.Line - 1
		m := prereq.NewMerger(prereq.WithReporter(prereq.ReporterFunc(func(_ context.Context, d prereq.Diagnostic) {
			add(Issue{
				Kind:   IssueMalformedPrerequisites,
				DocID:  doc.ID,
				File:   doc.RelativePath,
				Line:   line,
				Detail: d.Err.Error(),
			})
		})), prereq.WithSource(doc.RelativePath))
		m.Merge(ctx, nil, prereq.ParseContent(occ.Content))
	}
}

// linkedID maps a link to the document id it targets. ok is false for links
// that do not point at a document: external URLs, images, fragments, site
// paths outside RouteBasePath, and relative links without a Markdown extension.
func linkedID(set *Set, from *DocFile, l markdown.Link) (string, bool) {
	if l.Kind == markdown.LinkKindReferenceDefinition {
		return "", false
	}
	target, ok := l.DocTarget()
	if !ok {
		return "", false
	}

	if strings.HasPrefix(target, "/") {
		id, found := strings.CutPrefix(target, RouteBasePath)
		if !found || id == "" {
			return "", false
		}
		return id, true
	}

	dest := l.Destination
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if !strings.HasSuffix(dest, ".md") && !strings.HasSuffix(dest, ".mdx") {
		return "", false
	}
	rel := path.Join(from.Section, dest)
	if doc, ok := set.ByPath(rel); ok {
		return doc.ID, true
	}
	// Unknown file: report it under its file-derived id.
	return path.Join(from.Section, target), true
}
