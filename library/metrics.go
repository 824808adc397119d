package library

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusOK    = "ok"
	statusError = "error"

	directionDownload = "download"
	directionUpload   = "upload"
)

// metrics is nil when the Client was built without WithMetrics; every method is a no-op on a nil receiver.
type metrics struct {
	operations *prometheus.CounterVec
	bytes      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		operations: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "doclib_operations_total",
			Help: "Total number of document library operations",
		}, []string{"operation", "status"})),
		bytes: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "doclib_bytes_total",
			Help: "Total bytes transferred to and from document libraries",
		}, []string{"direction"})),
	}
}

// register returns the collector already registered under the same descriptor, if any.
func register(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}

func (m *metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	status := statusOK
	if err != nil {
		status = statusError
	}
	m.operations.WithLabelValues(operation, status).Inc()
}

func (m *metrics) transferred(direction string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bytes.WithLabelValues(direction).Add(float64(n))
}
