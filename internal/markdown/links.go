package markdown

import (
	"net/url"
	"path"
	"strings"
)

// Options controls how Markdown is parsed for internal analysis.
type Options struct{}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// IsExternal reports whether the destination has a scheme or is protocol-relative.
func (l Link) IsExternal() bool {
	if strings.HasPrefix(l.Destination, "//") {
		return true
	}
	u, err := url.Parse(l.Destination)
	return err == nil && u.Scheme != ""
}

// DocTarget returns the document path a relative or site-absolute link points at,
// without fragment, query or Markdown extension. ok is false for external links,
// pure fragments and images.
func (l Link) DocTarget() (target string, ok bool) {
	if l.Kind == LinkKindImage || l.IsExternal() {
		return "", false
	}
	dest := l.Destination
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return "", false
	}
	for _, ext := range []string{".mdx", ".md"} {
		if strings.HasSuffix(dest, ext) {
			dest = strings.TrimSuffix(dest, ext)
			break
		}
	}
	return path.Clean(dest), true
}
