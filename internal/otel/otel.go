package otel

import (
	"context"
	"sync"

	eventbus "github.com/hanpama/graphqlgen/internal/eventbus"
	events "github.com/hanpama/graphqlgen/internal/events"
	runid "github.com/hanpama/graphqlgen/internal/runid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := newSubscriber(otel.Tracer("graphqlgen"))
	unsubscribe := sub.register()

	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

type subscriber struct {
	tracer          trace.Tracer
	generateSpans   sync.Map // rid -> trace.Span
	introspectSpans sync.Map // rid/type -> trace.Span
}

func newSubscriber(tracer trace.Tracer) *subscriber {
	return &subscriber{tracer: tracer}
}

func introspectKey(rid, typeName string) string { return rid + "/" + typeName }

func (s *subscriber) register() (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.GenerateStart) {
			rid, _ := runid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "graphqlgen.generate")
			span.SetAttributes(
				attribute.String("graphqlgen.run_id", rid),
				attribute.String("graphqlgen.schema", e.Schema),
				attribute.String("graphqlgen.output", e.Output),
			)
			s.generateSpans.Store(rid, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.GenerateFinish) {
			rid, _ := runid.FromContext(ctx)
			v, ok := s.generateSpans.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(
				attribute.Int("graphqlgen.types", e.Types),
				attribute.Int("graphqlgen.models", e.Models),
				attribute.Int("graphqlgen.bytes", e.Bytes),
			)
			endSpan(span, e.Err)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.IntrospectStart) {
			rid, _ := runid.FromContext(ctx)
			parent := ctx
			if v, ok := s.generateSpans.Load(rid); ok {
				parent = trace.ContextWithSpan(ctx, v.(trace.Span))
			}
			_, span := s.tracer.Start(parent, "graphqlgen.introspect")
			span.SetAttributes(
				attribute.String("graphqlgen.type", e.TypeName),
				attribute.String("graphqlgen.model", e.Model),
				attribute.String("graphqlgen.model_file", e.File),
			)
			s.introspectSpans.Store(introspectKey(rid, e.TypeName), span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.IntrospectFinish) {
			rid, _ := runid.FromContext(ctx)
			v, ok := s.introspectSpans.LoadAndDelete(introspectKey(rid, e.TypeName))
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(attribute.Int("graphqlgen.members", e.Members))
			endSpan(span, e.Err)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
