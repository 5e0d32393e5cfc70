package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docnav.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "docnav.yaml" {
			t.Errorf("expected context file=docnav.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := OutlineError("duplicate id").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryOutline) {
			t.Error("expected error to have outline category")
		}
		if !err.IsFatal() {
			t.Error("expected outline error to be fatal")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := OutlineError("malformed node").Build()
		wrapped := fmt.Errorf("load sidebar: %w", inner)

		if GetCategory(wrapped) != CategoryOutline {
			t.Errorf("expected outline category through %%w wrap, got %s", GetCategory(wrapped))
		}
		if GetSeverity(wrapped) != SeverityFatal {
			t.Errorf("expected fatal severity through wrap, got %s", GetSeverity(wrapped))
		}
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		plain := errors.New("boom")
		if GetCategory(plain) != CategoryInternal {
			t.Errorf("expected internal category, got %s", GetCategory(plain))
		}
		if GetSeverity(plain) != SeverityError {
			t.Errorf("expected error severity, got %s", GetSeverity(plain))
		}
	})
}

type duplicateID struct{ id string }

func (d *duplicateID) Error() string { return "duplicate " + d.id }

func TestErrorBuilder(t *testing.T) {
	t.Run("Wrapped typed cause", func(t *testing.T) {
		cause := &duplicateID{id: "intro"}
		err := WrapError(cause, CategoryOutline, "duplicate document identifier").
			Fatal().
			WithContext("id", "intro").
			Build()

		var target *duplicateID
		if !errors.As(err, &target) {
			t.Fatal("expected errors.As to reach the typed cause")
		}
		if target.id != "intro" {
			t.Errorf("expected id intro, got %s", target.id)
		}
		if err.Cause() != cause {
			t.Error("expected Cause to return the wrapped error")
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := MarkdownError("not a list").Build()
		derived := base.WithContext("file", "guide.md")

		if _, ok := base.Context().Get("file"); ok {
			t.Error("expected original context to stay untouched")
		}
		if v, _ := derived.Context().GetString("file"); v != "guide.md" {
			t.Errorf("expected derived file context, got %q", v)
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
			{"OutlineError", OutlineError("test"), CategoryOutline, SeverityFatal},
			{"MarkdownError", MarkdownError("test"), CategoryMarkdown, SeverityWarning},
			{"NotFoundError", NotFoundError("test"), CategoryNotFound, SeverityWarning},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
			{"RuntimeError", RuntimeError("test"), CategoryRuntime, SeverityFatal},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	t.Run("Context operations", func(t *testing.T) {
		ctx := make(ErrorContext)
		ctx = ctx.Set("key1", "value1")
		ctx = ctx.Set("key2", 42)

		value1, exists1 := ctx.GetString("key1")
		if !exists1 || value1 != "value1" {
			t.Errorf("expected key1=value1, got %v", value1)
		}

		value2, exists2 := ctx.Get("key2")
		if !exists2 || value2 != 42 {
			t.Errorf("expected key2=42, got %v", value2)
		}

		if _, exists3 := ctx.Get("nonexistent"); exists3 {
			t.Error("expected nonexistent key to not exist")
		}
	})

	t.Run("Context merge", func(t *testing.T) {
		ctx1 := ErrorContext{"key1": "value1", "shared": "original"}
		ctx2 := ErrorContext{"key2": "value2", "shared": "overridden"}

		merged := ctx1.Merge(ctx2)

		value1, _ := merged.GetString("key1")
		value2, _ := merged.GetString("key2")
		shared, _ := merged.GetString("shared")

		if value1 != "value1" || value2 != "value2" {
			t.Errorf("expected both keys merged, got %s/%s", value1, value2)
		}
		if shared != "overridden" {
			t.Errorf("expected shared=overridden, got %s", shared)
		}
	})
}
