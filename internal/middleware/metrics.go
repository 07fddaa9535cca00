package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RPCRequests counts finished RPCs by procedure and status code.
var RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ridesplit",
	Subsystem: "rpc",
	Name:      "requests_total",
	Help:      "Total RPCs by procedure and code.",
}, []string{"procedure", "code"})

// RPCDuration tracks RPC latency.
var RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "ridesplit",
	Subsystem: "rpc",
	Name:      "duration_seconds",
	Help:      "RPC latency in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
}, []string{"procedure"})

// MetricsInterceptor returns a Connect interceptor that records RPCRequests and RPCDuration.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			RPCRequests.WithLabelValues(procedure, code).Inc()
			RPCDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
