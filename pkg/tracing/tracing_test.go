package tracing

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestCreateChildSpan(t *testing.T) {
	RegisterTestingT(t)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	ctx, span := CreateChildSpan(context.Background(), "handler.category.create", []attribute.KeyValue{
		attribute.String("category.name", "Golang"),
	})

	Expect(GetTraceID(ctx)).NotTo(BeEmpty())

	AddSpanError(span, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	Expect(ended).To(HaveLen(1))
	Expect(ended[0].Name()).To(Equal("handler.category.create"))
	Expect(ended[0].Status().Code).To(Equal(codes.Error))
	Expect(ended[0].Attributes()).To(ContainElement(attribute.String("category.name", "Golang")))
}

func TestGetTraceID_WithoutSpan(t *testing.T) {
	RegisterTestingT(t)

	Expect(GetTraceID(context.Background())).To(BeEmpty())
}
