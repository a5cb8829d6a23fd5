package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecorded(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	m.SubmissionResult(true)
	m.SubmissionResult(false)
	m.SubmissionResult(true)

	done := m.UploadStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploadsInFlight))
	done(false)

	m.StoreError("append", "unavailable")
	m.QuestionFallback()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("failure")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.uploadsInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeErrors.WithLabelValues("append", "unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.questionFallback))
	assert.Equal(t, 1, testutil.CollectAndCount(m.uploadDuration))
}

func TestMetricsDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustNewMetrics(reg)
	assert.Panics(t, func() { MustNewMetrics(reg) })
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SubmissionResult(true)
		m.UploadStarted()(true)
		m.StoreError("read", "not_found")
		m.QuestionFallback()
	})
}
