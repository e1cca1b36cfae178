package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/alexanderramin/leadflow/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceNamespace = "leadflow"

// Resource attribute keys. Leadflow-specific keys live under "leadflow.".
const (
	keyServiceName    = attribute.Key("service.name")
	keyServiceVersion = attribute.Key("service.version")
	keyServiceNS      = attribute.Key("service.namespace")
	keyEnvironment    = attribute.Key("deployment.environment.name")
	keyStorage        = attribute.Key("leadflow.storage.backend")
	keyDefaultActor   = attribute.Key("leadflow.actor.default")
)

type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	loggerProvider *sdklog.LoggerProvider
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if t.loggerProvider != nil {
		if err := t.loggerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("logger shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Setup installs global trace and log providers exporting over OTLP HTTP.
// It returns nil when no endpoint is configured.
func Setup(ctx context.Context, cfg config.Config) (*Telemetry, error) {
	if !cfg.OTel.Enabled() {
		return nil, nil
	}

	res, err := Resource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	endpoint := strings.TrimRight(cfg.OTel.Endpoint, "/")
	headers := ParseHeaders(cfg.OTel.Headers)

	tp, err := newTracerProvider(ctx, endpoint, headers, cfg.OTel.SampleRatio, res)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	lp, err := newLoggerProvider(ctx, endpoint, headers, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	global.SetLoggerProvider(lp)

	return &Telemetry{tracerProvider: tp, loggerProvider: lp}, nil
}

// Resource describes this process to the collector. Attributes from
// OTEL_RESOURCE_ATTRIBUTES are merged in and may override the defaults.
func Resource(ctx context.Context, cfg config.Config) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			keyServiceName.String(cfg.OTel.ServiceName),
			keyServiceVersion.String(cfg.OTel.ServiceVersion),
			keyServiceNS.String(serviceNamespace),
			keyEnvironment.String(cfg.Env),
			keyStorage.String(StorageBackend(cfg.Storage.DSN)),
			keyDefaultActor.String(cfg.Actor),
		),
		resource.WithFromEnv(),
	)
}

// StorageBackend reduces a storage DSN to its scheme so credentials and
// paths never reach the collector.
func StorageBackend(dsn string) string {
	scheme, _, found := strings.Cut(strings.TrimSpace(dsn), ":")
	if !found {
		scheme = strings.TrimSpace(dsn)
	}
	switch scheme = strings.ToLower(scheme); scheme {
	case "memory", "file", "sqlite", "redis", "rediss":
		return scheme
	case "postgres", "postgresql":
		return "postgres"
	}
	return "other"
}

func newTracerProvider(ctx context.Context, endpoint string, headers map[string]string, ratio float64, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint+"/v1/traces"),
		otlptracehttp.WithHeaders(headers),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(ratio)),
	), nil
}

func newLoggerProvider(ctx context.Context, endpoint string, headers map[string]string, res *resource.Resource) (*sdklog.LoggerProvider, error) {
	exporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpointURL(endpoint+"/v1/logs"),
		otlploghttp.WithHeaders(headers),
	)
	if err != nil {
		return nil, fmt.Errorf("creating log exporter: %w", err)
	}
	return sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	), nil
}

// Sampler follows the caller's sampling decision and samples new root traces
// at ratio. Ratios outside (0, 1) clamp to the nearest bound.
func Sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// ParseHeaders reads the k=v,k2=v2 form of OTEL_EXPORTER_OTLP_HEADERS.
// Values are URL-decoded; pairs that fail to decode are dropped.
func ParseHeaders(s string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		decoded, err := url.QueryUnescape(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		headers[k] = decoded
	}
	return headers
}
