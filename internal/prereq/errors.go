package prereq

import "fmt"

// MalformedInputError reports supplied content that is not a single Markdown bullet list.
type MalformedInputError struct {
	// Kind is the goldmark node kind where the shape check failed, e.g. "Paragraph".
	Kind   string
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("prerequisites content is not a markdown list (line %d): %s", e.Line, e.Reason)
	}
	return "prerequisites content is not a markdown list: " + e.Reason
}
