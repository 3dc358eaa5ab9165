package upload

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Part kinds and failure reasons reported to Metrics.
const (
	KindField = "field"
	KindFile  = "file"
	KindEmpty = "empty"

	ReasonSizeLimit = "size_limit"
	ReasonMalformed = "malformed"
)

// Metrics observes decode passes.
type Metrics interface {
	PartDecoded(kind string, size int64)
	Failed(reason string)
}

type nopMetrics struct{}

func (nopMetrics) PartDecoded(string, int64) {}
func (nopMetrics) Failed(string)             {}

// PrometheusMetrics exports decode counters.
type PrometheusMetrics struct {
	parts    *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
// Collectors already registered by an earlier call are reused.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		parts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mvckit",
			Subsystem: "upload",
			Name:      "parts_total",
			Help:      "Multipart parts decoded, by kind.",
		}, []string{"kind"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mvckit",
			Subsystem: "upload",
			Name:      "bytes_total",
			Help:      "Bytes of multipart part content decoded, by kind.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mvckit",
			Subsystem: "upload",
			Name:      "failures_total",
			Help:      "Multipart decode passes aborted, by reason.",
		}, []string{"reason"}),
	}

	var err error
	if m.parts, err = register(reg, m.parts); err != nil {
		return nil, err
	}
	if m.bytes, err = register(reg, m.bytes); err != nil {
		return nil, err
	}
	if m.failures, err = register(reg, m.failures); err != nil {
		return nil, err
	}
	return m, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func (m *PrometheusMetrics) PartDecoded(kind string, size int64) {
	m.parts.WithLabelValues(kind).Inc()
	if size > 0 {
		m.bytes.WithLabelValues(kind).Add(float64(size))
	}
}

func (m *PrometheusMetrics) Failed(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}
