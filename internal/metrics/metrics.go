// Package metrics exposes prometheus collectors for the detection pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "whale_alert"

type Metrics struct {
	BlocksProcessed    prometheus.Counter
	BlockFailures      prometheus.Counter
	ReceiptFailures    prometheus.Counter
	DecodeFailures     prometheus.Counter
	DuplicateEvents    prometheus.Counter
	WhaleEvents        *prometheus.CounterVec
	ConnectFailures    prometheus.Counter
	UpstreamConnected  prometheus.Gauge
	Subscribers        prometheus.Gauge
	DroppedSubscribers prometheus.Counter
	ExportResubscribes prometheus.Counter
	ExportBackfilled   prometheus.Counter
	RPCLatency         *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what tests and tools without /metrics use.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BlocksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_processed_total",
			Help:      "Blocks fully scanned for whale transfers.",
		}),
		BlockFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_failures_total",
			Help:      "Blocks skipped because they could not be fetched.",
		}),
		ReceiptFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_failures_total",
			Help:      "Transaction receipts that could not be fetched.",
		}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_failures_total",
			Help:      "Malformed transfer logs of registered tokens.",
		}),
		DuplicateEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_events_total",
			Help:      "Whale events suppressed because they were already emitted.",
		}),
		WhaleEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "whale_events_total",
			Help:      "Emitted whale events by asset symbol.",
		}, []string{"symbol"}),
		ConnectFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_connect_failures_total",
			Help:      "Failed upstream connection attempts.",
		}),
		UpstreamConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "upstream_connected",
			Help:      "1 while subscribed to new blocks.",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subscribers",
			Help:      "Currently connected push subscribers.",
		}),
		DroppedSubscribers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_subscribers_total",
			Help:      "Subscribers disconnected because their queue was full.",
		}),
		ExportResubscribes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_resubscribes_total",
			Help:      "Times the kafka export fell behind the hub and subscribed again.",
		}),
		ExportBackfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_backfilled_total",
			Help:      "Events the kafka export recovered from history after falling behind.",
		}),
		RPCLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Upstream rpc call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.BlocksProcessed,
			m.BlockFailures,
			m.ReceiptFailures,
			m.DecodeFailures,
			m.DuplicateEvents,
			m.WhaleEvents,
			m.ConnectFailures,
			m.UpstreamConnected,
			m.Subscribers,
			m.DroppedSubscribers,
			m.ExportResubscribes,
			m.ExportBackfilled,
			m.RPCLatency,
		)
	}

	return m
}
