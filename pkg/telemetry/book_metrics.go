package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BookMetrics holds the counters and histograms recorded around every
// InstrumentedBook operation.
type BookMetrics struct {
	operationsTotal metric.Int64Counter
	levelDepth      metric.Int64Histogram
	topChangedTotal metric.Int64Counter
}

// NewBookMetrics creates the instruments on meter. Each is scoped to this
// package rather than the caller so multiple InstrumentedBook instances
// sharing a meter aggregate naturally by symbol attribute.
func NewBookMetrics(meter metric.Meter) (*BookMetrics, error) {
	operationsTotal, err := meter.Int64Counter(
		"orderbook.operations.total",
		metric.WithDescription("Total number of book operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	levelDepth, err := meter.Int64Histogram(
		"orderbook.level.orders_count",
		metric.WithDescription("Number of orders on the level touched by an operation"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	topChangedTotal, err := meter.Int64Counter(
		"orderbook.top_of_book_touched.total",
		metric.WithDescription("Number of operations whose LevelUpdate reported Top=true"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	return &BookMetrics{
		operationsTotal: operationsTotal,
		levelDepth:      levelDepth,
		topChangedTotal: topChangedTotal,
	}, nil
}

// RecordOperation records one book operation and its outcome.
func (m *BookMetrics) RecordOperation(ctx context.Context, symbol, operation, kind string, ordersCount int64, top bool) {
	attrs := []attribute.KeyValue{
		attribute.String("symbol", symbol),
		attribute.String("operation", operation),
		attribute.String("kind", kind),
	}
	m.operationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.levelDepth.Record(ctx, ordersCount, metric.WithAttributes(attrs...))
	if top {
		m.topChangedTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
