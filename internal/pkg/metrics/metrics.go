package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Checkout counters. StockConflicts counts commit-time reservation failures,
// the signal to watch when flash sales run hot.
var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_placed_total",
		Help: "Orders successfully committed with their stock reservation.",
	})

	StockConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_stock_conflicts_total",
		Help: "Checkouts rejected because stock changed between validation and commit.",
	})

	QuotesServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_quotes_served_total",
		Help: "Cart quotes computed for checkout preview.",
	})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_status_transitions_total",
		Help: "Order status transitions applied, by target status.",
	}, []string{"to"})

	CommissionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_commissions_created_total",
		Help: "Affiliate commissions recorded for delivered orders.",
	})

	EventsRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outbox_events_relayed_total",
		Help: "Outbox events published to the broker, by result.",
	}, []string{"result"})
)
