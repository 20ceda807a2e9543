package observability

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/coursecatalog-backend/internal/platform/envutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

// DefaultServiceName names the tracer and the OTel resource when no service name is configured.
const DefaultServiceName = "coursecatalog"

type OtelConfig struct {
	ServiceName string
	Environment string
	Version     string
}

// exporterSettings is the OTEL_* environment the tracer provider is built from.
type exporterSettings struct {
	enabled     bool
	endpoint    string
	insecure    bool
	headers     map[string]string
	sampleRatio float64
}

func loadExporterSettings() exporterSettings {
	return exporterSettings{
		enabled:     envutil.Bool("OTEL_ENABLED", false, nil),
		endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", nil),
		insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, nil),
		headers:     parseHeaderPairs(envutil.List("OTEL_EXPORTER_OTLP_HEADERS", nil, nil)),
		sampleRatio: parseRatio(envutil.String("OTEL_SAMPLER_RATIO", "", nil), 0.1),
	}
}

// parseHeaderPairs turns key=value items into a header map, skipping malformed ones.
func parseHeaderPairs(items []string) map[string]string {
	var out map[string]string
	for _, item := range items {
		k, v, ok := strings.Cut(item, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[k] = v
	}
	return out
}

func parseRatio(raw string, def float64) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	switch {
	case err != nil:
		return def
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

var (
	otelOnce     sync.Once
	otelShutdown func(context.Context) error
)

// InitOTel installs the global tracer provider once per process and returns its
// shutdown func. With OTEL_ENABLED off it returns nil and tracing stays no-op.
func InitOTel(ctx context.Context, log *logger.Logger, cfg OtelConfig) func(context.Context) error {
	otelOnce.Do(func() {
		settings := loadExporterSettings()
		if !settings.enabled {
			return
		}
		if log == nil {
			log = logger.Nop()
		}
		service := strings.TrimSpace(cfg.ServiceName)
		if service == "" {
			service = DefaultServiceName
		}

		res, err := resource.New(ctx, resource.WithAttributes(
			semconv.ServiceNameKey.String(service),
			semconv.ServiceVersionKey.String(strings.TrimSpace(cfg.Version)),
			attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
		))
		if err != nil {
			log.Warn("otel resource init failed (continuing)", "error", err)
		}

		opts := []sdktrace.TracerProviderOption{
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(settings.sampleRatio))),
			sdktrace.WithResource(res),
		}
		if exp, err := newSpanExporter(ctx, settings); err != nil {
			log.Warn("otel exporter init failed (continuing)", "error", err)
		} else {
			opts = append(opts, sdktrace.WithBatcher(exp, sdktrace.WithBatchTimeout(5*time.Second)))
		}
		tp := sdktrace.NewTracerProvider(opts...)

		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
		otelShutdown = tp.Shutdown

		exporter := settings.endpoint
		if exporter == "" {
			exporter = "stdout"
		}
		log.Info("otel tracing initialized", "service", service, "exporter", exporter, "sample_ratio", settings.sampleRatio)
	})
	return otelShutdown
}

// newSpanExporter sends spans over OTLP/HTTP when an endpoint is set and pretty
// prints them to stdout otherwise.
func newSpanExporter(ctx context.Context, s exporterSettings) (sdktrace.SpanExporter, error) {
	if s.endpoint == "" {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(s.endpoint)}
	if s.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(s.headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(s.headers))
	}
	return otlptracehttp.New(ctx, opts...)
}

// Tracer returns the process tracer. It is a no-op tracer until InitOTel installs a provider.
func Tracer() trace.Tracer {
	return otel.Tracer(DefaultServiceName)
}
