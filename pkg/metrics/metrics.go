package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "agnivolt_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	registryOps   *prometheus.CounterVec
	remoteCalls   *prometheus.CounterVec
	historyExport *prometheus.CounterVec
)

func init() {
	registryOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "registry_operations_total",
			Help: "Device registry operations by op and result",
		},
		[]string{"op", "result"},
	)
	remoteCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "remote_calls_total",
			Help: "Remote store calls by backend, op and result",
		},
		[]string{"backend", "op", "result"},
	)
	historyExport = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "history_exports_total",
			Help: "History exports by format and result",
		},
		[]string{"format", "result"},
	)
}

// Register adds the collectors to reg once per process.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(registryOps, remoteCalls, historyExport)
	})
}

// Result maps an error to the result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// ObserveRegistry counts one registry operation; result is a free-form
// outcome such as "success", "not_found" or "already_registered".
func ObserveRegistry(op, result string) {
	registryOps.WithLabelValues(op, result).Inc()
}

func ObserveRemote(backend, op string, err error) {
	remoteCalls.WithLabelValues(backend, op, Result(err)).Inc()
}

func ObserveExport(format string, err error) {
	historyExport.WithLabelValues(format, Result(err)).Inc()
}

func RegistryOps() *prometheus.CounterVec {
	return registryOps
}

func RemoteCalls() *prometheus.CounterVec {
	return remoteCalls
}

func HistoryExports() *prometheus.CounterVec {
	return historyExport
}
