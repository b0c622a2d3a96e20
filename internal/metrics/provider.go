// Package metrics exports the users service's instrumentation in Prometheus format:
// per-operation counters and durations for the user use case, the stored records
// gauge fed by the in-memory store, and HTTP request metrics for the user routes.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// defaultServiceName identifies the process in target_info when no namespace is set.
const defaultServiceName = "users"

// Provider owns the meter provider shared by the container and the Prometheus registry
// served on the metrics port. Each Provider has its own registry, so tests and the
// running service never see each other's series.
type Provider struct {
	meterProvider *metric.MeterProvider
	exporter      *promexporter.Exporter
	registry      *prometheus.Registry
}

// NewProvider builds a Provider for METRICS_NAMESPACE. The namespace prefixes every metric
// name (users_operations_total, users_http_requests_total, ...) and becomes the service.name
// reported in target_info.
func NewProvider(namespace string) (*Provider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	serviceName := namespace
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	return &Provider{
		meterProvider: metric.NewMeterProvider(
			metric.WithReader(exporter),
			metric.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		),
		exporter: exporter,
		registry: registry,
	}, nil
}

// Handler serves the registry for GET /metrics on the metrics server.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// MeterProvider is handed to the business metrics, the stored records gauge and the
// HTTP metrics middleware.
func (p *Provider) MeterProvider() *metric.MeterProvider {
	return p.meterProvider
}

// Shutdown stops the meter provider. The container calls it after both servers stop.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
