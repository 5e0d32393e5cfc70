// Package frontmatter splits YAML front matter from Markdown/MDX documents and
// decodes the fields docnav reads from it.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Meta holds the front matter fields that affect navigation.
type Meta struct {
	// ID overrides the file-name part of the document id.
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	SidebarLabel string `yaml:"sidebar_label"`
}

// Document is a file split into front matter and body.
type Document struct {
	Meta Meta
	// Had reports whether the file carried a front matter block.
	Had  bool
	Body []byte
	// BodyLine is the 1-based file line on which Body starts.
	BodyLine int
}

// Split separates YAML front matter (`---` delimited) from the Markdown body.
//
// If the document does not start with a front matter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) && len(content)-len(nl)-3 >= start {
			end := len(content) - 3
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes its front matter.
func Parse(content []byte) (*Document, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return nil, err
	}
	doc := &Document{Had: had, Body: body, BodyLine: 1}
	if !had {
		return doc, nil
	}
	doc.BodyLine = bytes.Count(content[:len(content)-len(body)], []byte("\n")) + 1
	if len(bytes.TrimSpace(fm)) > 0 {
		if err := yaml.Unmarshal(fm, &doc.Meta); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
