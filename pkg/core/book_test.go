package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario A — single buy.
func TestScenarioA_SingleBuy(t *testing.T) {
	book := NewBook()
	order := NewOrder(Buy, 100, 0, 10)

	update := book.AddOrder(order)

	assert.Equal(t, KindAdd, update.Kind)
	assert.Equal(t, LevelSnapshot{Type: Bid, Price: 100, TotalVolume: 10, VisibleVolume: 10, OrdersCount: 1}, update.Level)
	assert.True(t, update.Top)

	best, ok := book.BestBid()
	require.True(t, ok)
	assert.Equal(t, uint64(100), best.Price)
}

// Scenario B — join same level.
func TestScenarioB_JoinSameLevel(t *testing.T) {
	book := NewBook()
	book.AddOrder(NewOrder(Buy, 100, 0, 10))
	update := book.AddOrder(NewOrder(Buy, 100, 0, 5))

	assert.Equal(t, KindUpdate, update.Kind)
	assert.Equal(t, uint64(15), update.Level.TotalVolume)
	assert.Equal(t, uint64(2), update.Level.OrdersCount)
	assert.True(t, update.Top)
}

// Scenario C — add improves top.
func TestScenarioC_AddImprovesTop(t *testing.T) {
	book := NewBook()
	book.AddOrder(NewOrder(Buy, 100, 0, 10))
	update := book.AddOrder(NewOrder(Buy, 101, 0, 1))

	assert.Equal(t, KindAdd, update.Kind)
	assert.Equal(t, uint64(101), update.Level.Price)
	assert.Equal(t, uint64(1), update.Level.TotalVolume)
	assert.Equal(t, uint64(1), update.Level.OrdersCount)
	assert.True(t, update.Top)

	best, ok := book.BestBid()
	require.True(t, ok)
	assert.Equal(t, uint64(101), best.Price)
}

// Scenario D — reduce empties level.
func TestScenarioD_ReduceEmptiesLevel(t *testing.T) {
	book := NewBook()
	order := NewOrder(Sell, 200, 0, 5)
	book.AddOrder(order)

	order.Quantity = 0
	order.VisibleQuantity = 0
	update := book.ReduceOrder(order, 5, 0, 5)

	assert.Equal(t, KindDelete, update.Kind)
	assert.Equal(t, LevelSnapshot{Type: Ask, Price: 200, TotalVolume: 0, OrdersCount: 0}, update.Level)
	assert.False(t, update.Top)

	_, ok := book.BestAsk()
	assert.False(t, ok)
	_, ok = book.GetAsk(200)
	assert.False(t, ok)
}

// Scenario E — delete non-top level leaves best unchanged.
func TestScenarioE_DeleteNonTopLeavesBestUnchanged(t *testing.T) {
	book := NewBook()
	book.AddOrder(NewOrder(Buy, 100, 0, 10))
	low := NewOrder(Buy, 99, 0, 7)
	book.AddOrder(low)

	update := book.DeleteOrder(low)

	assert.Equal(t, KindDelete, update.Kind)
	assert.Equal(t, uint64(99), update.Level.Price)
	assert.False(t, update.Top)

	best, ok := book.BestBid()
	require.True(t, ok)
	assert.Equal(t, uint64(100), best.Price)
}

// Scenario F — iceberg accounting.
func TestScenarioF_IcebergAccounting(t *testing.T) {
	book := NewBook()
	order := NewOrder(Buy, 100, 7, 3)
	book.AddOrder(order)

	order.Quantity = 7
	order.HiddenQuantity = 5
	order.VisibleQuantity = 2
	update := book.ReduceOrder(order, 3, 2, 1)

	assert.Equal(t, KindUpdate, update.Kind)
	assert.Equal(t, uint64(7), update.Level.TotalVolume)
	assert.Equal(t, uint64(5), update.Level.HiddenVolume)
	assert.Equal(t, uint64(2), update.Level.VisibleVolume)
	assert.Equal(t, uint64(1), update.Level.OrdersCount)
}

func TestRoundTrip_AddThenDeleteRestoresState(t *testing.T) {
	book := NewBook()
	book.AddOrder(NewOrder(Buy, 100, 0, 10))
	before, ok := book.BestBid()
	require.True(t, ok)

	order := NewOrder(Buy, 105, 0, 3)
	book.AddOrder(order)
	book.DeleteOrder(order)

	after, ok := book.BestBid()
	require.True(t, ok)
	assert.Equal(t, before, after)
	_, ok = book.GetBid(105)
	assert.False(t, ok)
}

func TestDeleteOrder_UnlinksRegardlessOfRemainingQuantity(t *testing.T) {
	book := NewBook()
	a := NewOrder(Sell, 50, 0, 4)
	b := NewOrder(Sell, 50, 0, 6)
	book.AddOrder(a)
	book.AddOrder(b)

	// a still carries its full quantity; DeleteOrder must unlink it anyway,
	// unlike ReduceOrder which only unlinks once quantity hits zero.
	update := book.DeleteOrder(a)

	assert.Equal(t, KindUpdate, update.Kind)
	assert.Equal(t, uint64(6), update.Level.TotalVolume)
	assert.Equal(t, uint64(1), update.Level.OrdersCount)
	assert.Nil(t, a.Level())
}

func TestTimePriority_OrderListPreservesInsertionOrder(t *testing.T) {
	book := NewBook()
	first := NewOrder(Buy, 10, 0, 1)
	second := NewOrder(Buy, 10, 0, 1)
	third := NewOrder(Buy, 10, 0, 1)
	book.AddOrder(first)
	book.AddOrder(second)
	book.AddOrder(third)

	level, ok := book.bids.get(10)
	require.True(t, ok)

	var seen []*Order
	level.Orders(func(o *Order) bool {
		seen = append(seen, o)
		return true
	})
	assert.Equal(t, []*Order{first, second, third}, seen)
}

func TestAddStopOrder_CreatesLevelInStopMapNotRestingMap(t *testing.T) {
	book := NewBook()
	stop := NewOrder(Buy, 150, 0, 8)

	book.AddStopOrder(stop)

	level, ok := book.GetBuyStopLevel(150)
	require.True(t, ok)
	// Buy stops are tagged with the opposite side's type per the preserved
	// historical quirk.
	assert.Equal(t, Ask, level.Type)
	assert.Equal(t, uint64(8), level.TotalVolume)

	_, ok = book.GetBid(150)
	assert.False(t, ok, "stop order must not land in the resting bid map")
}

func TestSellStopLevel_TaggedBid(t *testing.T) {
	book := NewBook()
	stop := NewOrder(Sell, 90, 0, 4)
	book.AddStopOrder(stop)

	level, ok := book.GetSellStopLevel(90)
	require.True(t, ok)
	assert.Equal(t, Bid, level.Type)
}

func TestDeleteStopOrder_RemovesEmptyLevel(t *testing.T) {
	book := NewBook()
	stop := NewOrder(Buy, 150, 0, 8)
	book.AddStopOrder(stop)

	book.DeleteStopOrder(stop)

	_, ok := book.GetBuyStopLevel(150)
	assert.False(t, ok)
	assert.Nil(t, stop.Level())
}

func TestBids_IteratesBestFirst(t *testing.T) {
	book := NewBook()
	book.AddOrder(NewOrder(Buy, 100, 0, 1))
	book.AddOrder(NewOrder(Buy, 105, 0, 1))
	book.AddOrder(NewOrder(Buy, 95, 0, 1))

	var prices []uint64
	book.Bids(func(l LevelSnapshot) bool {
		prices = append(prices, l.Price)
		return true
	})
	assert.Equal(t, []uint64{105, 100, 95}, prices)
}

func TestAsks_IteratesBestFirst(t *testing.T) {
	book := NewBook()
	book.AddOrder(NewOrder(Sell, 100, 0, 1))
	book.AddOrder(NewOrder(Sell, 95, 0, 1))
	book.AddOrder(NewOrder(Sell, 105, 0, 1))

	var prices []uint64
	book.Asks(func(l LevelSnapshot) bool {
		prices = append(prices, l.Price)
		return true
	})
	assert.Equal(t, []uint64{95, 100, 105}, prices)
}

func TestAddOrder_PanicsOnDoubleAdd(t *testing.T) {
	book := NewBook()
	order := NewOrder(Buy, 100, 0, 1)
	book.AddOrder(order)

	assert.Panics(t, func() { book.AddOrder(order) })
}

func TestDeleteOrder_PanicsWhenNotAMember(t *testing.T) {
	book := NewBook()
	order := NewOrder(Buy, 100, 0, 1)

	assert.Panics(t, func() { book.DeleteOrder(order) })
}

func TestOrderIndependence_AggregatesMatchRegardlessOfInsertOrder(t *testing.T) {
	bookA := NewBook()
	bookA.AddOrder(NewOrder(Buy, 100, 0, 10))
	bookA.AddOrder(NewOrder(Buy, 100, 3, 2))

	bookB := NewBook()
	bookB.AddOrder(NewOrder(Buy, 100, 3, 2))
	bookB.AddOrder(NewOrder(Buy, 100, 0, 10))

	levelA, _ := bookA.GetBid(100)
	levelB, _ := bookB.GetBid(100)
	assert.Equal(t, levelA.TotalVolume, levelB.TotalVolume)
	assert.Equal(t, levelA.HiddenVolume, levelB.HiddenVolume)
	assert.Equal(t, levelA.VisibleVolume, levelB.VisibleVolume)
	assert.Equal(t, levelA.OrdersCount, levelB.OrdersCount)
}

func TestNoZeroVolumeLevelSurvives(t *testing.T) {
	book := NewBook()
	order := NewOrder(Buy, 100, 0, 10)
	book.AddOrder(order)
	book.DeleteOrder(order)

	assert.Equal(t, 0, book.bids.len())
}
