package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RatingJobMetrics records outcomes of rating recompute jobs.
type RatingJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	retry    *prometheus.CounterVec
	noop     *prometheus.CounterVec
}

// NewRatingJobMetrics registers the rating job metrics on the provided registerer.
func NewRatingJobMetrics(reg prometheus.Registerer) *RatingJobMetrics {
	if reg == nil {
		return &RatingJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rating_job_duration_seconds",
		Help:    "Duration of rating recompute jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_job_success",
		Help: "Successful rating recompute executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_job_failure",
		Help: "Rating recompute jobs abandoned after exhausting retries.",
	}, []string{"job"})
	retry := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_job_retry",
		Help: "Transient rating recompute failures that were retried.",
	}, []string{"job"})
	noop := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_job_noop",
		Help: "Rating jobs skipped because the product no longer exists.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure, retry, noop)
	return &RatingJobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		retry:    retry,
		noop:     noop,
	}
}

// ObserveDuration records the duration for the named job.
func (r *RatingJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (r *RatingJobMetrics) IncSuccess(job string) {
	if r == nil || r.success == nil {
		return
	}
	r.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (r *RatingJobMetrics) IncFailure(job string) {
	if r == nil || r.failure == nil {
		return
	}
	r.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncRetry increments the retry counter for the named job.
func (r *RatingJobMetrics) IncRetry(job string) {
	if r == nil || r.retry == nil {
		return
	}
	r.retry.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncNoop increments the benign no-op counter for the named job.
func (r *RatingJobMetrics) IncNoop(job string) {
	if r == nil || r.noop == nil {
		return
	}
	r.noop.WithLabelValues(normalizeLabel(job)).Inc()
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
