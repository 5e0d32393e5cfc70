package navtree

import "fmt"

// MalformedNodeError reports a declaration that is neither a valid category nor a
// valid document reference.
type MalformedNodeError struct {
	Path   Path
	Reason string
}

func (e *MalformedNodeError) Error() string {
	return fmt.Sprintf("malformed outline entry at %s: %s", e.Path, e.Reason)
}

// DuplicateIdentifierError reports a document id declared more than once.
type DuplicateIdentifierError struct {
	ID     string
	First  Path
	Second Path
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("document id %q declared twice: first at %s, again at %s", e.ID, e.First, e.Second)
}
