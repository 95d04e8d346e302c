package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erain9/lob/pkg/core"
)

func TestInstrumentedBook_ForwardsToCoreBook(t *testing.T) {
	ctx := context.Background()
	provider, err := Init(ctx, Config{ServiceName: "test", Enabled: false})
	require.NoError(t, err)
	defer provider.Shutdown(ctx)

	metrics, err := NewBookMetrics(provider.Meter())
	require.NoError(t, err)

	book := core.NewBook()
	ib := NewInstrumentedBook(book, "BTC-USD", provider.Tracer(), metrics)

	order := core.NewOrder(core.Buy, 100, 0, 10)
	update := ib.AddOrder(ctx, order)

	require.Equal(t, core.KindAdd, update.Kind)
	require.True(t, update.Top)

	best, ok := ib.Book().BestBid()
	require.True(t, ok)
	require.Equal(t, uint64(100), best.Price)

	deleted := ib.DeleteOrder(ctx, order)
	require.Equal(t, core.KindDelete, deleted.Kind)
}
