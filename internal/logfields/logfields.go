package logfields

import "log/slog"

// Canonical log field names shared across packages.
const (
	KeySession  = "session_id"
	KeyPath     = "path"
	KeyPage     = "page"
	KeyTheme    = "theme"
	KeyKey      = "pref_key"
	KeyStatus   = "status"
	KeyDuration = "duration_ms"
	KeyRelay    = "relay"
	KeyJob      = "job"
	KeyCount    = "count"
	KeyError    = "error"
)

func Session(id string) slog.Attr     { return slog.String(KeySession, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Page(p string) slog.Attr         { return slog.String(KeyPage, p) }
func Theme(t string) slog.Attr        { return slog.String(KeyTheme, t) }
func PrefKey(k string) slog.Attr      { return slog.String(KeyKey, k) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }
func Relay(name string) slog.Attr     { return slog.String(KeyRelay, name) }
func Job(name string) slog.Attr       { return slog.String(KeyJob, name) }
func Count(n int64) slog.Attr         { return slog.Int64(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
