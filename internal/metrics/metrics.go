package metrics

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "court_reservation"

var (
	once sync.Once

	bookingsCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_committed_total",
			Help:      "Bookings created by checkout.",
		},
	)

	rangesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranges_rejected_total",
			Help:      "Dragged ranges discarded at drag end, by reason.",
		},
		[]string{"reason"},
	)

	checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by result.",
		},
		[]string{"result"},
	)

	checkoutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_duration_seconds",
			Help:      "Checkout latency including simulated payment.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCommitted, rangesRejected, checkouts, checkoutDuration)
	})
}

// Handler exposes the default registry for gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func AddBookingsCommitted(n int) {
	bookingsCommitted.Add(float64(n))
}

func IncRangeRejected(reason string) {
	rangesRejected.WithLabelValues(reason).Inc()
}

// ObserveCheckout records one checkout attempt.
func ObserveCheckout(result string, started time.Time) {
	checkouts.WithLabelValues(result).Inc()
	checkoutDuration.Observe(time.Since(started).Seconds())
}
