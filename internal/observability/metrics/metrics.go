package metrics

import "github.com/prometheus/client_golang/prometheus"

// BotMetrics exposes counters/histograms for the responder flows. All
// methods are nil-safe so wiring metrics stays optional.
type BotMetrics struct {
	inboundTotal     *prometheus.CounterVec
	repliesTotal     *prometheus.CounterVec
	outboundTotal    *prometheus.CounterVec
	throttledTotal   prometheus.Counter
	assistantLatency prometheus.Histogram
}

func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	m := &BotMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salesbot",
			Subsystem: "messaging",
			Name:      "inbound_webhook_total",
			Help:      "Total inbound WhatsApp webhooks",
		}, []string{"status"}),
		repliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salesbot",
			Subsystem: "engine",
			Name:      "replies_total",
			Help:      "Total replies by the rule that produced them",
		}, []string{"rule"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salesbot",
			Subsystem: "messaging",
			Name:      "outbound_total",
			Help:      "Total outbound WhatsApp sends",
		}, []string{"status"}),
		throttledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salesbot",
			Subsystem: "engine",
			Name:      "throttled_total",
			Help:      "Turns suppressed by the throttle gate",
		}),
		assistantLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salesbot",
			Subsystem: "assistant",
			Name:      "latency_seconds",
			Help:      "Latency of delegated assistant completions",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.repliesTotal, m.outboundTotal, m.throttledTotal, m.assistantLatency)
	return m
}

func (m *BotMetrics) ObserveInbound(status string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(status).Inc()
}

func (m *BotMetrics) ObserveReply(rule string) {
	if m == nil {
		return
	}
	m.repliesTotal.WithLabelValues(rule).Inc()
}

func (m *BotMetrics) ObserveOutbound(status string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(status).Inc()
}

func (m *BotMetrics) ObserveThrottled() {
	if m == nil {
		return
	}
	m.throttledTotal.Inc()
}

func (m *BotMetrics) ObserveAssistantLatency(seconds float64) {
	if m == nil {
		return
	}
	m.assistantLatency.Observe(seconds)
}
