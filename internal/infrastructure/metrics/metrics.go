package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the gateway's prometheus collectors.
type Metrics struct {
	WebhookRequests   *prometheus.CounterVec
	Events            *prometheus.CounterVec
	StockMutations    *prometheus.CounterVec
	SignatureFailures prometheus.Counter
	ReplyFailures     prometheus.Counter
}

// New registers the gateway collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		WebhookRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "line_webhook_requests_total",
			Help: "Inbound webhook requests by response status.",
		}, []string{"status"}),
		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "line_webhook_events_total",
			Help: "Processed webhook events by event type.",
		}, []string{"type"}),
		StockMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_mutations_total",
			Help: "Committed stock mutations by action.",
		}, []string{"action"}),
		SignatureFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "line_webhook_signature_failures_total",
			Help: "Webhook requests rejected because no tenant secret matched.",
		}),
		ReplyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "line_reply_failures_total",
			Help: "Reply deliveries that failed; reply tokens are one-shot so these interactions are lost.",
		}),
	}
}
