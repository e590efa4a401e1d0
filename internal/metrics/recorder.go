package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Result maps an error to its label.
func Result(err error) ResultLabel {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}

// Recorder defines the observability hooks of the server.
type Recorder interface {
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
	ObservePDFRender(locale string, d time.Duration, result ResultLabel)
	SetPDFInFlight(n int)
	IncVisitorRecorded()
	IncBlogReload(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are disabled).
type NoopRecorder struct{}

func (NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
func (NoopRecorder) ObservePDFRender(string, time.Duration, ResultLabel) {}
func (NoopRecorder) SetPDFInFlight(int) {}
func (NoopRecorder) IncVisitorRecorded() {}
func (NoopRecorder) IncBlogReload(ResultLabel) {}
