// Package metrics exports detection and result-cache counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arud"

// Recorder implements detector.Recorder and resultcache.Observer. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	detections  *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheErrors prometheus.Counter
	latency     prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Meter detections by quality of the top match.",
		}, []string{"quality"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "result_cache",
			Name:      "hits_total",
			Help:      "Detection results served from the result cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "result_cache",
			Name:      "misses_total",
			Help:      "Detection results computed because the cache had no entry.",
		}),
		cacheErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "result_cache",
			Name:      "errors_total",
			Help:      "Result cache backend failures.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "detect_duration_seconds",
			Help:      "Time spent in a single detect call.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
	}

	for _, c := range []prometheus.Collector{r.detections, r.cacheHits, r.cacheMisses, r.cacheErrors, r.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveDetection counts one detect call and its latency
func (r *Recorder) ObserveDetection(quality string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.detections.WithLabelValues(quality).Inc()
	r.latency.Observe(elapsed.Seconds())
}

// CacheHit counts a result served from cache
func (r *Recorder) CacheHit() {
	if r == nil {
		return
	}
	r.cacheHits.Inc()
}

// CacheMiss counts a result that had to be computed
func (r *Recorder) CacheMiss() {
	if r == nil {
		return
	}
	r.cacheMisses.Inc()
}

// CacheError counts a backend failure
func (r *Recorder) CacheError() {
	if r == nil {
		return
	}
	r.cacheErrors.Inc()
}
