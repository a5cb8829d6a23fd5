package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vro_daptar"

// Metrics holds the collectors for submission and upload activity. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	submissions      *prometheus.CounterVec
	uploads          *prometheus.CounterVec
	uploadDuration   prometheus.Histogram
	uploadsInFlight  prometheus.Gauge
	storeErrors      *prometheus.CounterVec
	questionFallback prometheus.Counter
}

// MustNewMetrics registers the collectors with reg and panics on a
// registration conflict. Tests should pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inspection",
			Name:      "submissions_total",
			Help:      "Inspection submissions by result.",
		}, []string{"result"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inspection",
			Name:      "uploads_total",
			Help:      "Attachment uploads by result.",
		}, []string{"result"}),
		uploadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "inspection",
			Name:      "upload_duration_seconds",
			Help:      "Time spent uploading a single attachment.",
			Buckets:   prometheus.DefBuckets,
		}),
		uploadsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inspection",
			Name:      "uploads_in_flight",
			Help:      "Attachment uploads currently running.",
		}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Row store failures by operation and code.",
		}, []string{"op", "code"}),
		questionFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inspection",
			Name:      "question_fallback_total",
			Help:      "Times the built-in question list replaced Master_Q.",
		}),
	}

	for _, c := range []prometheus.Collector{m.submissions, m.uploads, m.uploadDuration, m.uploadsInFlight, m.storeErrors, m.questionFallback} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				panic("metrics: collectors already registered, pass a fresh registry")
			}
			panic(err)
		}
	}
	return m
}

func (m *Metrics) SubmissionResult(ok bool) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result(ok)).Inc()
}

// UploadStarted marks an upload in flight; the returned func records its
// outcome and duration.
func (m *Metrics) UploadStarted() func(ok bool) {
	if m == nil {
		return func(bool) {}
	}
	start := time.Now()
	m.uploadsInFlight.Inc()
	return func(ok bool) {
		m.uploadsInFlight.Dec()
		m.uploadDuration.Observe(time.Since(start).Seconds())
		m.uploads.WithLabelValues(result(ok)).Inc()
	}
}

func (m *Metrics) StoreError(op, code string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op, code).Inc()
}

func (m *Metrics) QuestionFallback() {
	if m == nil {
		return
	}
	m.questionFallback.Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
