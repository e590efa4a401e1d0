package analytics

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahdiarghyani/portfolio/internal/logfields"
	"github.com/mahdiarghyani/portfolio/internal/metrics"
)

// untrackedPrefixes are never recorded: assets, admin pages, the privacy
// notice and machine endpoints.
var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/img/",
	"/admin",
	"/favicon",
	"/privacy",
	"/api/",
	"/metrics",
	"/healthz",
}

// ShouldTrack reports whether a request for path should be recorded.
// A "DNT: 1" header always opts out.
func ShouldTrack(path, dnt string) bool {
	if dnt == "1" {
		return false
	}
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// LocaleOf guesses the locale of a page path from its prefix.
func LocaleOf(path string) string {
	if path == "/fa" || strings.HasPrefix(path, "/fa/") {
		return "fa"
	}
	return "en"
}

// Tracker records page views from HTTP requests.
type Tracker struct {
	store    *Store
	recorder metrics.Recorder
	// Async writes in a goroutine so tracking never slows down a page.
	Async   bool
	Timeout time.Duration
}

// NewTracker returns an asynchronous tracker writing to store.
func NewTracker(store *Store, rec metrics.Recorder) *Tracker {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Tracker{store: store, recorder: rec, Async: true, Timeout: 5 * time.Second}
}

// Middleware records every trackable GET request.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || !ShouldTrack(path, c.GetHeader("DNT")) {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		if t.Async {
			go t.record(ip, ua, path)
		} else {
			t.record(ip, ua, path)
		}
		c.Next()
	}
}

func (t *Tracker) record(ip, userAgent, path string) {
	ctx, cancel := context.WithTimeout(context.Background(), t.Timeout)
	defer cancel()
	if err := t.store.RecordVisit(ctx, ip, userAgent, path, LocaleOf(path)); err != nil {
		slog.Error("Error recording visitor", logfields.Path(path), logfields.Error(err))
		return
	}
	t.recorder.IncVisitorRecorded()
}
