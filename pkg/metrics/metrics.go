package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amoylab/watson/internal/common/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Frame directions
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// Metrics collects SDK level prometheus metrics. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	restReqCnt  *prometheus.CounterVec
	restReqDur  *prometheus.HistogramVec
	restReqInfl *prometheus.GaugeVec
	frameCnt    *prometheus.CounterVec
	connInfl    prometheus.Gauge
	connCnt     *prometheus.CounterVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	restReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "rest_requests_total"}, []string{"service", "method", "status"})
	restReqDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "rest_request_duration_seconds", Buckets: buckets}, []string{"service", "method", "status"})
	restReqInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "rest_requests_inflight"}, []string{"service"})
	r.MustRegister(restReqCnt, restReqDur, restReqInfl)

	frameCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "stream_frames_total"}, []string{"direction", "kind"})
	connInfl := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: ns, Name: "stream_connections_inflight"})
	connCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "stream_connections_total"}, []string{"outcome"})
	r.MustRegister(frameCnt, connInfl, connCnt)

	return &Metrics{
		registry:    r,
		restReqCnt:  restReqCnt,
		restReqDur:  restReqDur,
		restReqInfl: restReqInfl,
		frameCnt:    frameCnt,
		connInfl:    connInfl,
		connCnt:     connCnt,
	}
}

func (m *Metrics) RESTStart(service string) {
	if m == nil {
		return
	}
	m.restReqInfl.WithLabelValues(service).Inc()
}

// RESTDone records a finished request. status is zero when no response was received.
func (m *Metrics) RESTDone(service, method string, status int, since time.Time) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.restReqCnt.WithLabelValues(service, method, code).Inc()
	m.restReqDur.WithLabelValues(service, method, code).Observe(time.Since(since).Seconds())
	m.restReqInfl.WithLabelValues(service).Dec()
}

func (m *Metrics) Frame(direction, kind string) {
	if m == nil {
		return
	}
	m.frameCnt.WithLabelValues(direction, kind).Inc()
}

func (m *Metrics) ConnOpened() {
	if m == nil {
		return
	}
	m.connInfl.Inc()
	m.connCnt.WithLabelValues("opened").Inc()
}

// ConnClosed records the end of an opened connection; outcome is "closed" or "error"
func (m *Metrics) ConnClosed(outcome string) {
	if m == nil {
		return
	}
	m.connInfl.Dec()
	m.connCnt.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ConnFailed() {
	if m == nil {
		return
	}
	m.connCnt.WithLabelValues("dial_error").Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
