package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used for spans started by Pandalearn.
const TracerName = "github.com/pandalearn/pandalearn"

// Tracer returns the tracer from the globally registered provider. Without a
// registered SDK provider every span is a no-op.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// OTelHooks records hook calls as events on the span carried by the context.
// It implements ThemeHooks, StoreHooks and HTTPHooks.
type OTelHooks struct{}

// NewOTelHooks returns hooks backed by OpenTelemetry spans.
func NewOTelHooks() *OTelHooks {
	return &OTelHooks{}
}

var (
	_ ThemeHooks = (*OTelHooks)(nil)
	_ StoreHooks = (*OTelHooks)(nil)
	_ HTTPHooks  = (*OTelHooks)(nil)
)

func (*OTelHooks) OnResolved(ctx context.Context, value, source string) {
	trace.SpanFromContext(ctx).AddEvent("theme.resolved", trace.WithAttributes(
		attribute.String("theme.value", value),
		attribute.String("theme.source", source),
	))
}

func (*OTelHooks) OnChanged(ctx context.Context, from, to, cause string) {
	trace.SpanFromContext(ctx).AddEvent("theme.changed", trace.WithAttributes(
		attribute.String("theme.from", from),
		attribute.String("theme.to", to),
		attribute.String("theme.cause", cause),
	))
}

func (*OTelHooks) OnDegraded(ctx context.Context, component string, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("theme.degraded", trace.WithAttributes(
		attribute.String("theme.component", component),
	))
	if err != nil {
		span.RecordError(err)
	}
}

func (*OTelHooks) OnHit(ctx context.Context, backend string) {
	trace.SpanFromContext(ctx).AddEvent("store.hit", trace.WithAttributes(attribute.String("store.backend", backend)))
}

func (*OTelHooks) OnMiss(ctx context.Context, backend string) {
	trace.SpanFromContext(ctx).AddEvent("store.miss", trace.WithAttributes(attribute.String("store.backend", backend)))
}

func (*OTelHooks) OnSet(ctx context.Context, backend string, size int) {
	trace.SpanFromContext(ctx).AddEvent("store.set", trace.WithAttributes(
		attribute.String("store.backend", backend),
		attribute.Int("store.size", size),
	))
}

func (*OTelHooks) OnError(ctx context.Context, backend, op string, err error) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("store.error", trace.WithAttributes(
		attribute.String("store.backend", backend),
		attribute.String("store.op", op),
	))
	if err != nil {
		span.RecordError(err)
	}
}

func (*OTelHooks) OnRequest(ctx context.Context, method, route string) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
	)
}

func (*OTelHooks) OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Int("http.response.status_code", statusCode),
		attribute.Int64("http.server.duration_ms", duration.Milliseconds()),
	)
	if statusCode >= 500 {
		span.SetStatus(codes.Error, method+" "+route)
	}
}

// RegisterOTel installs OTelHooks for every hook category.
func RegisterOTel() {
	h := NewOTelHooks()
	SetThemeHooks(h)
	SetStoreHooks(h)
	SetHTTPHooks(h)
}
