// Package errors provides the classified error primitives shared by docnav packages.
//
// Errors carry a category (config, outline, markdown, ...), a severity and a small
// structured context. Domain packages keep their own typed errors (for example a
// duplicate document identifier) and wrap them in a ClassifiedError so callers can
// both route on the category and reach the typed cause with errors.As.
//
// Example usage:
//
//	err := errors.WrapError(dupErr, errors.CategoryOutline, "duplicate document identifier").
//		Fatal().
//		WithContext("id", dupErr.ID).
//		Build()
package errors
