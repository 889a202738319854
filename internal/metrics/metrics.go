package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checkout counts orders created and terminal payment outcomes.
type Checkout struct {
	OrdersCreated   prometheus.Counter
	PaymentOutcomes *prometheus.CounterVec
}

// NewCheckout registers the checkout counters on reg. Tests pass their own
// registry so repeated construction does not collide.
func NewCheckout(reg prometheus.Registerer) *Checkout {
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookstore",
		Subsystem: "checkout",
		Name:      "orders_created_total",
		Help:      "Total number of orders created from carts.",
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookstore",
		Subsystem: "checkout",
		Name:      "payment_outcomes_total",
		Help:      "Terminal payment outcomes by status.",
	}, []string{"status"})

	reg.MustRegister(created, outcomes)
	return &Checkout{OrdersCreated: created, PaymentOutcomes: outcomes}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
