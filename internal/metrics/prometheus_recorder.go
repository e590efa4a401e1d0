package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "portfolio"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	httpDuration     *prom.HistogramVec
	httpRequests     *prom.CounterVec
	pdfDuration      *prom.HistogramVec
	pdfInFlight      prom.Gauge
	visitorsRecorded prom.Counter
	blogReloads      *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route",
			Buckets:   prom.DefBuckets,
		}, []string{"method", "route"}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),
		pdfDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "pdf_render_duration_seconds",
			Help:      "Duration of resume PDF renders",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"locale", "result"}),
		pdfInFlight: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pdf_renders_in_flight",
			Help:      "PDF renders currently running",
		}),
		visitorsRecorded: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "visitors_recorded_total",
			Help:      "Page visits stored by the analytics middleware",
		}),
		blogReloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "blog_reloads_total",
			Help:      "Blog library reloads by outcome",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.httpDuration, pr.httpRequests, pr.pdfDuration, pr.pdfInFlight, pr.visitorsRecorded, pr.blogReloads)
	return pr
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (p *PrometheusRecorder) ObservePDFRender(locale string, d time.Duration, result ResultLabel) {
	if p == nil {
		return
	}
	p.pdfDuration.WithLabelValues(locale, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetPDFInFlight(n int) {
	if p == nil {
		return
	}
	p.pdfInFlight.Set(float64(n))
}

func (p *PrometheusRecorder) IncVisitorRecorded() {
	if p == nil {
		return
	}
	p.visitorsRecorded.Inc()
}

func (p *PrometheusRecorder) IncBlogReload(result ResultLabel) {
	if p == nil {
		return
	}
	p.blogReloads.WithLabelValues(string(result)).Inc()
}
