package index

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the prefix of every metric name.
const Namespace = "email_index"

// Part kinds counted by the parts metric.
const (
	kindMultipart  = "multipart"
	kindMessage    = "message"
	kindText       = "text"
	kindAttachment = "attachment"
	kindSignature  = "signature"
)

// Warning reasons counted by the warnings metric.
const (
	reasonParse       = "parse"
	reasonParser      = "parser"
	reasonSignedExtra = "signed_extra_part"
	reasonEmbedded    = "embedded_message"
	reasonUnknownPart = "unknown_part"
	reasonMaxDepth    = "max_depth"
)

// Metrics are the Prometheus counters updated by an Indexer. A nil *Metrics
// records nothing.
type Metrics struct {
	Messages *prometheus.CounterVec
	Parts    *prometheus.CounterVec
	Warnings *prometheus.CounterVec
}

// NewMetrics creates the indexer counters and registers them with reg. If reg
// is nil, the counters are created but not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "messages_total",
				Help:      "Messages indexed, by status",
			},
			[]string{"status"},
		),
		Parts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "parts_total",
				Help:      "MIME parts visited, by kind",
			},
			[]string{"kind"},
		),
		Warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "warnings_total",
				Help:      "Non-fatal problems found while indexing, by reason",
			},
			[]string{"reason"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Messages, m.Parts, m.Warnings)
	}

	return m
}

func (m *Metrics) message(s Status) {
	if m == nil {
		return
	}
	m.Messages.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) part(kind string) {
	if m == nil {
		return
	}
	m.Parts.WithLabelValues(kind).Inc()
}

func (m *Metrics) warning(reason string) {
	if m == nil {
		return
	}
	m.Warnings.WithLabelValues(reason).Inc()
}
