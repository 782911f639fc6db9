package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	packetsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hammesh",
			Subsystem: "mesh",
			Name:      "packets_received_total",
			Help:      "Application packets delivered by the transport.",
		},
	)
	packetsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hammesh",
			Subsystem: "mesh",
			Name:      "packets_sent_total",
			Help:      "Application packets handed to the transport.",
		},
	)
	beaconsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hammesh",
			Subsystem: "mesh",
			Name:      "beacons_total",
			Help:      "Broadcast beacons originated by this node.",
		},
	)
	consoleLines = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hammesh",
			Subsystem: "console",
			Name:      "lines_total",
			Help:      "Completed administrative console lines.",
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hammesh",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests on the status surface.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hammesh",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			packetsReceived, packetsSent, beaconsSent, consoleLines,
			httpRequests, httpDuration,
		)
	})
}

func CountPacketReceived() {
	RegisterMetrics()
	packetsReceived.Inc()
}

func CountPacketSent() {
	RegisterMetrics()
	packetsSent.Inc()
}

func CountBeacon() {
	RegisterMetrics()
	beaconsSent.Inc()
}

func CountConsoleLine() {
	RegisterMetrics()
	consoleLines.Inc()
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}
