package pdf

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/mahdiarghyani/portfolio/internal/content"
	"github.com/mahdiarghyani/portfolio/internal/metrics"
)

// ResumeURL is the print-mode resume page of loc under base.
func ResumeURL(base string, loc content.Locale) string {
	return strings.TrimRight(base, "/") + loc.Prefix() + "/resume?print=true"
}

var filenameUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename keeps a caller supplied name safe for a
// Content-Disposition header. It returns fallback when nothing usable is
// left and always ends in ".pdf".
func SanitizeFilename(name, fallback string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Trim(filenameUnsafe.ReplaceAllString(name, "_"), "._")
	if name == "" {
		return fallback
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// Disposition builds the Content-Disposition value: attachment when
// download is set, inline otherwise.
func Disposition(filename string, download bool) string {
	kind := "inline"
	if download {
		kind = "attachment"
	}
	return fmt.Sprintf(`%s; filename="%s"`, kind, strings.ReplaceAll(filename, `"`, ""))
}

// Service renders resume PDFs with bounded concurrency.
type Service struct {
	renderer Renderer
	baseURL  string
	sem      *semaphore.Weighted
	inFlight atomic.Int64
	recorder metrics.Recorder
}

// NewService returns a Service that prints pages of baseURL with at most
// maxConcurrent renders at once.
func NewService(r Renderer, baseURL string, maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{
		renderer: r,
		baseURL:  baseURL,
		sem:      semaphore.NewWeighted(int64(maxConcurrent)),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Render prints the resume of loc. It waits for a free slot or ctx.
// requestBase is used when the service has no configured base URL.
func (s *Service) Render(ctx context.Context, loc content.Locale, requestBase string) ([]byte, error) {
	base := s.baseURL
	if base == "" {
		base = requestBase
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: waiting for a render slot: %w", ErrRender, err)
	}
	defer s.sem.Release(1)

	s.recorder.SetPDFInFlight(int(s.inFlight.Add(1)))
	defer func() { s.recorder.SetPDFInFlight(int(s.inFlight.Add(-1))) }()

	start := time.Now()
	data, err := s.renderer.Render(ctx, Request{URL: ResumeURL(base, loc), Locale: loc})
	s.recorder.ObservePDFRender(loc.String(), time.Since(start), metrics.Result(err))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// BaseURLFromRequest derives the base URL the renderer should load when
// none is configured. Loopback and private network hosts are rewritten to
// the local listener since the browser runs on this machine.
func BaseURLFromRequest(scheme, host, localAddr string) string {
	if scheme == "" {
		scheme = "http"
	}
	if isLocalHost(host) {
		host = localAddr
		scheme = "http"
	}
	return (&url.URL{Scheme: scheme, Host: host}).String()
}

// isLocalHost reports whether a Host header value, with or without a
// port, names this machine or a private network address.
func isLocalHost(host string) bool {
	h, _, err := net.SplitHostPort(host)
	if err != nil {
		h = strings.Trim(host, "[]")
	}
	if h == "localhost" {
		return true
	}
	ip := net.ParseIP(h)
	return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
}
