package core

import (
	"testing"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// recordLatency times fn and records it, in nanoseconds, into hist. It
// mirrors the latency-histogram pattern the teacher's own matching
// benchmarks use, retargeted at the core's own add/reduce/delete path.
func recordLatency(b *testing.B, hist *hdrhistogram.Histogram, fn func()) {
	start := time.Now()
	fn()
	hist.RecordValue(time.Since(start).Nanoseconds())
}

func newLatencyHistogram() *hdrhistogram.Histogram {
	// 1ns floor, 1s ceiling, 3 significant figures — generous enough for a
	// single-threaded in-memory data structure's operation latency.
	return hdrhistogram.New(1, 1_000_000_000, 3)
}

func BenchmarkAddOrder(b *testing.B) {
	book := NewBook()
	hist := newLatencyHistogram()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		order := NewOrder(Buy, uint64(100+i%50), 0, 10)
		recordLatency(b, hist, func() { book.AddOrder(order) })
	}
	b.ReportMetric(float64(hist.ValueAtQuantile(99)), "p99-ns")
}

func BenchmarkAddReduceDeleteOrder(b *testing.B) {
	book := NewBook()
	hist := newLatencyHistogram()
	orders := make([]*Order, b.N)
	for i := range orders {
		orders[i] = NewOrder(Sell, uint64(200+i%50), 0, 10)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		order := orders[i]
		recordLatency(b, hist, func() { book.AddOrder(order) })
		order.Quantity = 5
		order.VisibleQuantity = 5
		recordLatency(b, hist, func() { book.ReduceOrder(order, 5, 0, 5) })
		recordLatency(b, hist, func() { book.DeleteOrder(order) })
	}
	b.ReportMetric(float64(hist.ValueAtQuantile(99)), "p99-ns")
}
