// Package navtree builds the documentation sidebar from an author-maintained outline.
//
// An outline is an ordered list of declarations (Decl): categories that group further
// declarations under a label, and document references that point at exactly one
// document id. Build validates the outline and returns an immutable Tree that keeps
// the authored order. Ids must be unique across the whole tree.
//
// Entries that an author disabled in the outline file are simply absent from the
// declarations handed to Build; the tree has no notion of disabled nodes.
//
// Lookups on a built tree never fail hard: Resolve reports a missing id with ok=false
// so callers can warn about a broken cross-reference and keep going.
package navtree
