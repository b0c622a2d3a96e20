package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests that did not match any registered route, so arbitrary
// URLs cannot grow the label set.
const unmatchedRoute = "unmatched"

// httpMetrics holds HTTP-specific metric instruments.
type httpMetrics struct {
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
	inFlight       metric.Int64UpDownCounter
}

func newHTTPMetrics(meterProvider metric.MeterProvider, namespace string) (*httpMetrics, error) {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	inFlight, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_http_requests_in_flight", namespace),
		metric.WithDescription("Number of HTTP requests currently being served"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestCounter: requestCounter,
		durationHisto:  durationHisto,
		inFlight:       inFlight,
	}, nil
}

// HTTPMetricsMiddleware returns a Gin middleware that records HTTP request metrics:
// request totals and durations labeled with method, path and status_code, plus the
// number of requests in flight labeled with method and path.
// The path label is the matched route pattern (e.g., /api/user/:userId), never the raw URL.
// If the instruments cannot be created the middleware records nothing.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	metrics, err := newHTTPMetrics(meterProvider, namespace)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		route := attribute.String("path", routeLabel(c.FullPath()))
		method := attribute.String("method", c.Request.Method)

		metrics.inFlight.Add(ctx, 1, metric.WithAttributes(method, route))
		defer metrics.inFlight.Add(ctx, -1, metric.WithAttributes(method, route))

		c.Next()

		attrs := metric.WithAttributes(
			method,
			route,
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		metrics.requestCounter.Add(ctx, 1, attrs)
		metrics.durationHisto.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}

// routeLabel returns the route pattern, or unmatchedRoute when gin found no route.
func routeLabel(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}
