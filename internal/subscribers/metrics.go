package subscribers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "launchlist"

var (
	subscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscribers",
			Name:      "subscriptions_total",
			Help:      "Total subscribe attempts by contact method and result",
		},
		[]string{"contact_method", "result"},
	)

	unsubscribesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscribers",
			Name:      "unsubscribes_total",
			Help:      "Total unsubscribe attempts by result",
		},
		[]string{"result"},
	)

	smsOutboundTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sms",
			Name:      "outbound_total",
			Help:      "Total outbound confirmation messages by status",
		},
		[]string{"status"},
	)

	smsInboundTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sms",
			Name:      "inbound_total",
			Help:      "Total inbound messages by recognized keyword",
		},
		[]string{"keyword"},
	)
)

// recordSubscription records a subscribe attempt outcome.
func recordSubscription(contactMethod, result string) {
	subscriptionsTotal.WithLabelValues(contactMethod, result).Inc()
}

// recordUnsubscribe records an unsubscribe attempt outcome.
func recordUnsubscribe(result string) {
	unsubscribesTotal.WithLabelValues(result).Inc()
}

// recordOutboundSMS records a confirmation send outcome.
func recordOutboundSMS(status string) {
	smsOutboundTotal.WithLabelValues(status).Inc()
}

// recordInboundSMS records a recognized inbound keyword.
func recordInboundSMS(keyword string) {
	smsInboundTotal.WithLabelValues(keyword).Inc()
}
