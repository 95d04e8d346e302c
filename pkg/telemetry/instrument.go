package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/erain9/lob/pkg/core"
)

// InstrumentedBook wraps a *core.Book with OpenTelemetry tracing and
// metrics around every public operation, keeping pkg/core itself free of
// any telemetry dependency. It forwards every call straight through to the
// wrapped book; none of the order-book semantics live here.
type InstrumentedBook struct {
	book    *core.Book
	symbol  string
	tracer  trace.Tracer
	metrics *BookMetrics
}

// NewInstrumentedBook wraps book, recording spans on tracer and metrics
// into metrics, tagging every emitted attribute with symbol.
func NewInstrumentedBook(book *core.Book, symbol string, tracer trace.Tracer, metrics *BookMetrics) *InstrumentedBook {
	return &InstrumentedBook{book: book, symbol: symbol, tracer: tracer, metrics: metrics}
}

// Book returns the wrapped core book for read-only accessor calls
// (BestBid, GetAsk, iteration, ...) that don't need instrumentation.
func (ib *InstrumentedBook) Book() *core.Book {
	return ib.book
}

func (ib *InstrumentedBook) finish(ctx context.Context, span trace.Span, operation string, update core.LevelUpdate) core.LevelUpdate {
	span.SetAttributes(
		attribute.String(AttributeUpdateKind, update.Kind.String()),
		attribute.Int64(AttributeQuantity, int64(update.Level.TotalVolume)),
		attribute.Bool(AttributeTop, update.Top),
	)
	span.End()
	ib.metrics.RecordOperation(ctx, ib.symbol, operation, update.Kind.String(), int64(update.Level.OrdersCount), update.Top)
	return update
}

// AddOrder instruments core.Book.AddOrder.
func (ib *InstrumentedBook) AddOrder(ctx context.Context, order *core.Order) core.LevelUpdate {
	ctx, span := StartSpan(ctx, ib.tracer, SpanAddOrder,
		attribute.String(AttributeSymbol, ib.symbol),
		attribute.String(AttributeSide, order.Side.String()),
		attribute.Int64(AttributePrice, int64(order.Price)),
	)
	return ib.finish(ctx, span, "add_order", ib.book.AddOrder(order))
}

// ReduceOrder instruments core.Book.ReduceOrder.
func (ib *InstrumentedBook) ReduceOrder(ctx context.Context, order *core.Order, deltaQty, deltaHidden, deltaVisible uint64) core.LevelUpdate {
	ctx, span := StartSpan(ctx, ib.tracer, SpanReduceOrder,
		attribute.String(AttributeSymbol, ib.symbol),
		attribute.String(AttributeSide, order.Side.String()),
		attribute.Int64(AttributePrice, int64(order.Price)),
	)
	return ib.finish(ctx, span, "reduce_order", ib.book.ReduceOrder(order, deltaQty, deltaHidden, deltaVisible))
}

// DeleteOrder instruments core.Book.DeleteOrder.
func (ib *InstrumentedBook) DeleteOrder(ctx context.Context, order *core.Order) core.LevelUpdate {
	ctx, span := StartSpan(ctx, ib.tracer, SpanDeleteOrder,
		attribute.String(AttributeSymbol, ib.symbol),
		attribute.String(AttributeSide, order.Side.String()),
		attribute.Int64(AttributePrice, int64(order.Price)),
	)
	return ib.finish(ctx, span, "delete_order", ib.book.DeleteOrder(order))
}

// AddStopOrder instruments core.Book.AddStopOrder. Stop operations return no
// LevelUpdate, so the span carries no update attributes and the operation is
// recorded with an empty kind, an orders count of 0 and Top=false.
func (ib *InstrumentedBook) AddStopOrder(ctx context.Context, order *core.Order) {
	_, span := StartSpan(ctx, ib.tracer, SpanAddStopOrder,
		attribute.String(AttributeSymbol, ib.symbol),
		attribute.String(AttributeSide, order.Side.String()),
		attribute.Int64(AttributePrice, int64(order.Price)),
	)
	defer span.End()
	ib.book.AddStopOrder(order)
	ib.metrics.RecordOperation(ctx, ib.symbol, "add_stop_order", "", 0, false)
}

// ReduceStopOrder instruments core.Book.ReduceStopOrder.
func (ib *InstrumentedBook) ReduceStopOrder(ctx context.Context, order *core.Order, deltaQty, deltaHidden, deltaVisible uint64) {
	_, span := StartSpan(ctx, ib.tracer, SpanReduceStopOrder,
		attribute.String(AttributeSymbol, ib.symbol),
		attribute.String(AttributeSide, order.Side.String()),
		attribute.Int64(AttributePrice, int64(order.Price)),
	)
	defer span.End()
	ib.book.ReduceStopOrder(order, deltaQty, deltaHidden, deltaVisible)
	ib.metrics.RecordOperation(ctx, ib.symbol, "reduce_stop_order", "", 0, false)
}

// DeleteStopOrder instruments core.Book.DeleteStopOrder.
func (ib *InstrumentedBook) DeleteStopOrder(ctx context.Context, order *core.Order) {
	_, span := StartSpan(ctx, ib.tracer, SpanDeleteStopOrder,
		attribute.String(AttributeSymbol, ib.symbol),
		attribute.String(AttributeSide, order.Side.String()),
		attribute.Int64(AttributePrice, int64(order.Price)),
	)
	defer span.End()
	ib.book.DeleteStopOrder(order)
	ib.metrics.RecordOperation(ctx, ib.symbol, "delete_stop_order", "", 0, false)
}
