package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "solarcalc_"

var (
	registerOnce sync.Once

	analyzeRequests *prometheus.CounterVec
	analyzeLatency  *prometheus.HistogramVec
	providerCalls   *prometheus.CounterVec
)

// Init registers the API metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		analyzeRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "analyze_requests_total",
				Help: "Total analyze requests by result",
			},
			[]string{"result"},
		)
		analyzeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "analyze_latency_seconds",
				Help:    "Analyze latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		providerCalls = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "provider_calls_total",
				Help: "Total production provider calls by source and result",
			},
			[]string{"source", "result"},
		)
		prometheus.MustRegister(analyzeRequests, analyzeLatency, providerCalls)
	})
}

// ObserveAnalyze records one analyze request.
func ObserveAnalyze(result string, elapsed time.Duration) {
	if analyzeRequests == nil {
		return
	}
	analyzeRequests.WithLabelValues(result).Inc()
	analyzeLatency.WithLabelValues(result).Observe(elapsed.Seconds())
}

// ObserveProviderCall records one production provider call.
func ObserveProviderCall(source, result string) {
	if providerCalls == nil {
		return
	}
	providerCalls.WithLabelValues(source, result).Inc()
}
