// Package metrics holds the observability hooks of the portfolio server.
//
// Components receive a Recorder and default to NoopRecorder, so no nil
// checks are needed at call sites. PrometheusRecorder is installed by the
// serve command and exposed through HTTPHandler at /metrics.
package metrics
