package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(t *testing.T) (*Store, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	s, err := OpenMemory(WithSalt("pepper"), WithClock(c.now))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, c
}

func TestHashIP(t *testing.T) {
	s, _ := newTestStore(t)
	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))

	other, err := OpenMemory(WithSalt("salt"))
	require.NoError(t, err)
	defer other.Close()
	assert.NotEqual(t, h, other.HashIP("203.0.113.7"))
}

func TestRecordAndStats(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStore(t)

	c.t = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/blog", "en"))
	c.t = time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/", "en"))
	c.t = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordVisit(ctx, "2.2.2.2", "ua", "/fa", "fa"))
	require.NoError(t, s.RecordVisit(ctx, "3.3.3.3", "ua", "/", "en"))
	require.NoError(t, s.RecordExport(ctx, "1.1.1.1", "fa", true))
	require.NoError(t, s.RecordExport(ctx, "1.1.1.1", "fa", false))
	require.NoError(t, s.RecordExport(ctx, "1.1.1.1", "en", false))
	c.t = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 3, stats.TotalExports)
	assert.Equal(t, []LocaleStat{{"fa", 2}, {"en", 1}}, stats.ExportsByLocale)
	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, PathStat{Path: "/", Visits: 2}, stats.TopPaths[0])

	require.Len(t, stats.RecentVisitors, 4)
	newest := stats.RecentVisitors[0]
	assert.Equal(t, "/", newest.Path)
	assert.Equal(t, s.HashIP("3.3.3.3"), newest.HashedIP)
	assert.True(t, newest.Timestamp.Equal(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)))

	exports, err := s.RecentExports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, exports, 3)
	assert.Equal(t, "en", exports[0].Locale)
	assert.True(t, exports[2].Download)
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStore(t)

	c.t = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/", "en"))
	require.NoError(t, s.RecordExport(ctx, "1.1.1.1", "en", true))
	c.t = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/", "en"))
	c.t = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	n, err := s.Cleanup(ctx, DefaultRetention)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	visits, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, visits, 1)
}

func TestOpenFileMigratesLegacySchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.db.Exec(`DROP TABLE visitors`)
	require.NoError(t, err)
	_, err = s.db.Exec(`CREATE TABLE visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		country TEXT
	)`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.RecordVisit(context.Background(), "1.1.1.1", "ua", "/fa", "fa"))
	visits, err := s.RecentVisitors(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "fa", visits[0].Locale)
}

func TestShouldTrack(t *testing.T) {
	assert.True(t, ShouldTrack("/", ""))
	assert.True(t, ShouldTrack("/fa/blog/x", "0"))
	assert.False(t, ShouldTrack("/", "1"))
	for _, p := range []string{"/static/app.wasm", "/admin/dashboard", "/privacy", "/api/resume", "/metrics", "/favicon.ico"} {
		assert.False(t, ShouldTrack(p, ""), p)
	}
}

func TestLocaleOf(t *testing.T) {
	assert.Equal(t, "fa", LocaleOf("/fa"))
	assert.Equal(t, "fa", LocaleOf("/fa/resume"))
	assert.Equal(t, "en", LocaleOf("/faq"))
	assert.Equal(t, "en", LocaleOf("/"))
}

func TestTrackerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, _ := newTestStore(t)
	tr := NewTracker(s, nil)
	tr.Async = false

	r := gin.New()
	r.Use(tr.Middleware())
	r.GET("/*path", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/fa/blog", nil),
		httptest.NewRequest(http.MethodGet, "/static/x.css", nil),
		func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("DNT", "1")
			return r
		}(),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	visits, err := s.RecentVisitors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "/fa/blog", visits[0].Path)
	assert.Equal(t, "fa", visits[0].Locale)
}

func TestJanitorRunNow(t *testing.T) {
	ctx := context.Background()
	s, c := newTestStore(t)
	c.t = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/", "en"))
	c.t = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	j, err := NewJanitor(s, 0, time.Hour)
	require.NoError(t, err)
	n, err := j.RunNow(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	j.Start()
	require.NoError(t, j.Stop())
}
