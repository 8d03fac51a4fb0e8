// Package tracing provides OpenTelemetry tracing for the WhatsOnChain MCP server.
//
// Two span shapes are used: a client span per WhatsOnChain request
// (StartAPISpan / EndAPISpan) and an internal span per MCP tool call
// (StartToolSpan / EndToolSpan). The resource carries the network and
// endpoint profile the process is bound to.
package tracing

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of every span
const TracerName = "github.com/olgasafonova/whatsonchain-mcp-server"

// Attribute keys shared by the client and tool spans
const (
	AttrNetwork    = attribute.Key("woc.network")
	AttrProfile    = attribute.Key("woc.profile")
	AttrEndpoint   = attribute.Key("woc.endpoint")
	AttrCached     = attribute.Key("woc.cached")
	AttrShared     = attribute.Key("woc.shared")
	AttrErrorKind  = attribute.Key("woc.error.kind")
	AttrToolName   = attribute.Key("mcp.tool.name")
	AttrToolCat    = attribute.Key("mcp.tool.category")
	AttrToolRO     = attribute.Key("mcp.tool.readonly")
	AttrHTTPStatus = attribute.Key("http.response.status_code")
	AttrHTTPMethod = attribute.Key("http.request.method")
)

// Config holds tracing configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Network        string // WhatsOnChain network the process serves
	Profile        string // current or legacy endpoint profile
	Enabled        bool
	OTLPEndpoint   string // OTLP/HTTP collector; empty exports to stderr
	SampleRate     float64
}

// DefaultConfig reads the standard OTEL_* variables. Tracing is on when
// OTEL_ENABLED is true or a collector endpoint is set.
func DefaultConfig(network, profile string) Config {
	env := os.Getenv("OTEL_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	return Config{
		ServiceName:    "whatsonchain-mcp-server",
		ServiceVersion: "1.0.0",
		Environment:    env,
		Network:        network,
		Profile:        profile,
		Enabled:        os.Getenv("OTEL_ENABLED") == "true" || endpoint != "",
		OTLPEndpoint:   endpoint,
		SampleRate:     1.0,
	}
}

// Resource describes the process to the collector
func Resource(cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	}
	if cfg.Network != "" {
		attrs = append(attrs, AttrNetwork.String(cfg.Network))
	}
	if cfg.Profile != "" {
		attrs = append(attrs, AttrProfile.String(cfg.Profile))
	}
	return resource.Merge(resource.Default(), resource.NewWithAttributes(semconv.SchemaURL, attrs...))
}

// Sampler maps a sample rate onto a sampler. Rates at or above 1 sample
// everything and rates at or below 0 sample nothing.
func Sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
}

// Setup installs the global tracer provider and returns its shutdown function.
// A disabled config installs nothing and returns a no-op.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := Resource(cfg)
	if err != nil {
		return nil, err
	}

	var exporter sdktrace.SpanExporter
	if cfg.OTLPEndpoint != "" {
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	} else {
		// stdout carries the MCP protocol in stdio mode
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
	}
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(cfg.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Tracer returns the tracer from the current global provider
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartAPISpan opens a client span for one WhatsOnChain request
func StartAPISpan(ctx context.Context, network, endpoint, method string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		AttrNetwork.String(network),
		AttrHTTPMethod.String(method),
	}
	if endpoint != "" {
		attrs = append(attrs, AttrEndpoint.String(endpoint))
	}
	return Tracer().Start(ctx, "woc."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// APIOutcome is what EndAPISpan records about a finished request
type APIOutcome struct {
	StatusCode int // zero when no response arrived
	Cached     bool
	Shared     bool
	ErrorKind  string // server, network or setup
	Err        error
}

// EndAPISpan records the outcome of a request and ends the span. A request
// that failed gets an Error status with the error's message.
func EndAPISpan(span trace.Span, out APIOutcome) {
	defer span.End()

	if out.StatusCode != 0 {
		span.SetAttributes(
			AttrHTTPStatus.Int(out.StatusCode),
			AttrCached.Bool(out.Cached),
			AttrShared.Bool(out.Shared),
		)
	}
	if out.Err == nil {
		return
	}
	if out.ErrorKind != "" {
		span.SetAttributes(AttrErrorKind.String(out.ErrorKind))
	}
	span.RecordError(out.Err)
	span.SetStatus(codes.Error, out.Err.Error())
}

// StartToolSpan opens a span for one MCP tool call
func StartToolSpan(ctx context.Context, tool, category, network string, readOnly bool) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "mcp.tool."+tool,
		trace.WithAttributes(
			AttrToolName.String(tool),
			AttrToolCat.String(category),
			AttrToolRO.Bool(readOnly),
			AttrNetwork.String(network),
		),
	)
}

// EndToolSpan sets the tool span status from err and ends the span
func EndToolSpan(span trace.Span, err error) {
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
