package public

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	conversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "converter_conversions_total",
		Help: "Completed currency conversions by pair.",
	}, []string{"from", "to"})

	requestErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "converter_request_errors_total",
		Help: "Requests that ended with an error response.",
	})
)
