package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sentinel_realtime_connections",
		Help: "Number of currently registered realtime connections.",
	})

	broadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_realtime_broadcasts_total",
		Help: "Total number of broadcast events fanned out.",
	})

	sendFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_realtime_send_failures_total",
		Help: "Total number of failed sends that removed a connection.",
	})
)
