package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span names for each InstrumentedBook operation.
const (
	SpanAddOrder      = "orderbook.add_order"
	SpanReduceOrder    = "orderbook.reduce_order"
	SpanDeleteOrder    = "orderbook.delete_order"
	SpanAddStopOrder   = "orderbook.add_stop_order"
	SpanReduceStopOrder = "orderbook.reduce_stop_order"
	SpanDeleteStopOrder = "orderbook.delete_stop_order"
)

// Span attribute keys.
const (
	AttributeSymbol      = "orderbook.symbol"
	AttributeSide        = "orderbook.side"
	AttributePrice       = "orderbook.price"
	AttributeQuantity    = "orderbook.quantity"
	AttributeUpdateKind  = "orderbook.update_kind"
	AttributeTop         = "orderbook.top"
)

// StartSpan starts a span for a book operation under tracer.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
