package cascade

import (
	"github.com/stratocloud/cascade/service/codec"
	"github.com/stratocloud/cascade/service/event"
	"github.com/stratocloud/cascade/service/node"
	"github.com/stratocloud/cascade/service/storage"
	"github.com/stratocloud/cascade/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the Service façade.
type Option func(s *Service)

// WithConfig sets the service configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithStorage sets the storage collaborator.
func WithStorage(svc storage.Service) Option {
	return func(s *Service) { s.storage = svc }
}

// WithNode sets the node collaborator.
func WithNode(svc node.Service) Option {
	return func(s *Service) { s.node = svc }
}

// WithCodec sets the payload codec.
func WithCodec(svc *codec.Service) Option {
	return func(s *Service) { s.codec = svc }
}

// WithEventService sets the lifecycle event service.
func WithEventService(service *event.Service) Option {
	return func(s *Service) { s.events = service }
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times – the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter. This enables
// integrations with exporters other than the built-in stdout exporter, for example OTLP, Jaeger or
// Zipkin. The function is safe to call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
