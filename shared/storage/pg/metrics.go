package pg

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dbQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatkit_db_queries_total",
			Help: "Total number of database operations",
		},
		[]string{"op", "status"},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatkit_db_query_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"op"},
	)
)

// observe records one finished operation.
func observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	dbQueriesTotal.WithLabelValues(op, status).Inc()
	dbQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
