// Package observability exposes Prometheus metrics for query transactions.
package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ts3query",
			Subsystem: "client",
			Name:      "commands_total",
			Help:      "Completed command transactions by status code.",
		},
		[]string{"command", "code"},
	)
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ts3query",
			Subsystem: "client",
			Name:      "command_duration_seconds",
			Help:      "Full command transaction duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	connects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ts3query",
			Subsystem: "client",
			Name:      "connects_total",
			Help:      "Connection attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(commands, commandDuration, connects)
	})
}

func RecordCommand(command string, code int, duration time.Duration) {
	RegisterMetrics()
	commands.WithLabelValues(command, strconv.Itoa(code)).Inc()
	commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func RecordConnect(outcome string) {
	RegisterMetrics()
	connects.WithLabelValues(outcome).Inc()
}
