package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeySidebar    = "sidebar"
	KeyDocID      = "doc_id"
	KeyLabel      = "label"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyStage      = "stage"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyReason     = "reason"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Sidebar(name string) slog.Attr   { return slog.String(KeySidebar, name) }
func DocID(id string) slog.Attr       { return slog.String(KeyDocID, id) }
func Label(l string) slog.Attr        { return slog.String(KeyLabel, l) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
