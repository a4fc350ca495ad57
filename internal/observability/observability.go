// Package observability bundles the logger, metrics registry, and tracer
// the modules share.
package observability

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Observability carries the shared observability components.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *OperationMetrics
	Tracer   trace.Tracer
}

// New builds the observability bundle. Environment selects the log level:
// anything other than "production" logs at debug.
func New(serviceName, environment string) *Observability {
	level := slog.LevelDebug
	if environment == "production" {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("service", serviceName))

	registry := prometheus.NewRegistry()
	metrics := NewOperationMetrics(registry)

	return &Observability{
		Logger:   logger,
		Registry: registry,
		Metrics:  metrics,
		Tracer:   otel.Tracer(serviceName),
	}
}
