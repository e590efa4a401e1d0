package logfields

import "log/slog"

// Canonical log field names shared by every package.
const (
	KeyLocale     = "locale"
	KeySection    = "section"
	KeyPath       = "path"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRequestID  = "request_id"
	KeyDurationMS = "duration_ms"
	KeySlug       = "slug"
	KeyURL        = "url"
	KeyVisitor    = "visitor"
	KeyError      = "error"
)

func Locale(l string) slog.Attr       { return slog.String(KeyLocale, l) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Visitor(hash string) slog.Attr   { return slog.String(KeyVisitor, hash) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
