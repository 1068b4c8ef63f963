package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 요청 총 수
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTP 요청 처리 시간 (히스토그램)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// 현재 처리 중인 HTTP 요청 수
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// 단어 조회 수 (캐시 적중 여부별)
	wordLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "word_lookup_total",
			Help: "Total number of dictionary lookups served",
		},
		[]string{"cache_hit"},
	)

	// 외부 사전 API 호출 수
	providerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dictionary_provider_calls_total",
			Help: "Total number of upstream dictionary API calls",
		},
		[]string{"status"},
	)

	// 외부 사전 API 응답 시간
	providerDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dictionary_provider_duration_seconds",
			Help:    "Upstream dictionary API call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// 요청 한도 초과로 거부된 요청 수
	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"action"},
	)
)

// Provider call outcomes.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

func RequestStarted() {
	httpRequestsInFlight.Inc()
}

// RequestFinished는 처리 완료된 HTTP 요청을 기록합니다.
func RequestFinished(method, endpoint, status string, elapsed time.Duration) {
	httpRequestsInFlight.Dec()
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// RecordWordLookup은 단어 조회 메트릭을 기록합니다.
func RecordWordLookup(cacheHit bool) {
	hit := "false"
	if cacheHit {
		hit = "true"
	}
	wordLookupTotal.WithLabelValues(hit).Inc()
}

// RecordProviderCall은 외부 사전 API 호출 메트릭을 기록합니다.
func RecordProviderCall(status string, elapsed time.Duration) {
	providerCallsTotal.WithLabelValues(status).Inc()
	providerDuration.Observe(elapsed.Seconds())
}

func RecordRateLimited(action string) {
	rateLimitedTotal.WithLabelValues(action).Inc()
}
