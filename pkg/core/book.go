// Package core implements the price-indexed level structure at the heart
// of a single-symbol limit order book: four ordered price maps (resting
// bids and asks, pending buy and sell stops), an O(1) best-price cache per
// resting side, and the mutation operations a matching engine layered
// above this package drives. Matching, trade generation, stop triggering,
// persistence and networking are all out of scope; this package only
// answers "what does the book look like now, and did the top change".
package core

// Book is a single-symbol order book core. It is not safe for concurrent
// use; callers must serialize all operations, typically by giving each
// symbol's book a single owning goroutine.
type Book struct {
	bids *priceMap
	asks *priceMap

	buyStop  *priceMap
	sellStop *priceMap

	bestBid *Level
	bestAsk *Level

	pool *levelPool
}

// NewBook constructs an empty book.
func NewBook() *Book {
	return &Book{
		bids:     newPriceMap(bidLess),
		asks:     newPriceMap(askLess),
		buyStop:  newPriceMap(buyStopLess),
		sellStop: newPriceMap(sellStopLess),
		pool:     newLevelPool(),
	}
}

func (b *Book) restingMap(side Side) (*priceMap, **Level, LevelType) {
	if side == Buy {
		return b.bids, &b.bestBid, Bid
	}
	return b.asks, &b.bestAsk, Ask
}

func (b *Book) stopMap(side Side) (*priceMap, LevelType) {
	// Stop levels are tagged with the opposite side's type, a historical
	// quirk preserved verbatim from the venue this was modeled on.
	if side == Buy {
		return b.buyStop, Ask
	}
	return b.sellStop, Bid
}

func (b *Book) bestOfSide(side Side) *Level {
	if side == Buy {
		return b.bestBid
	}
	return b.bestAsk
}

// BestBid returns the current best (highest-priced) resting bid level.
func (b *Book) BestBid() (LevelSnapshot, bool) {
	if b.bestBid == nil {
		return LevelSnapshot{}, false
	}
	return snapshot(b.bestBid), true
}

// BestAsk returns the current best (lowest-priced) resting ask level.
func (b *Book) BestAsk() (LevelSnapshot, bool) {
	if b.bestAsk == nil {
		return LevelSnapshot{}, false
	}
	return snapshot(b.bestAsk), true
}

// GetBid looks up a resting bid level by price.
func (b *Book) GetBid(price uint64) (LevelSnapshot, bool) {
	l, ok := b.bids.get(price)
	if !ok {
		return LevelSnapshot{}, false
	}
	return snapshot(l), true
}

// GetAsk looks up a resting ask level by price.
func (b *Book) GetAsk(price uint64) (LevelSnapshot, bool) {
	l, ok := b.asks.get(price)
	if !ok {
		return LevelSnapshot{}, false
	}
	return snapshot(l), true
}

// GetBuyStopLevel looks up a pending buy-stop level by trigger price.
func (b *Book) GetBuyStopLevel(price uint64) (LevelSnapshot, bool) {
	l, ok := b.buyStop.get(price)
	if !ok {
		return LevelSnapshot{}, false
	}
	return snapshot(l), true
}

// GetSellStopLevel looks up a pending sell-stop level by trigger price.
func (b *Book) GetSellStopLevel(price uint64) (LevelSnapshot, bool) {
	l, ok := b.sellStop.get(price)
	if !ok {
		return LevelSnapshot{}, false
	}
	return snapshot(l), true
}

// Bids walks resting bid levels best-first (highest price first).
func (b *Book) Bids(fn func(LevelSnapshot) bool) {
	b.bids.ascend(func(l *Level) bool { return fn(snapshot(l)) })
}

// Asks walks resting ask levels best-first (lowest price first).
func (b *Book) Asks(fn func(LevelSnapshot) bool) {
	b.asks.ascend(func(l *Level) bool { return fn(snapshot(l)) })
}

// BuyStops walks pending buy-stop levels in ascending trigger-price order.
func (b *Book) BuyStops(fn func(LevelSnapshot) bool) {
	b.buyStop.ascend(func(l *Level) bool { return fn(snapshot(l)) })
}

// SellStops walks pending sell-stop levels in descending trigger-price order.
func (b *Book) SellStops(fn func(LevelSnapshot) bool) {
	b.sellStop.ascend(func(l *Level) bool { return fn(snapshot(l)) })
}

// AddLevel creates a fresh resting level for order's side and price,
// inserts it into that side's map, and refreshes the best-price cache.
// The caller must already know no level exists at this price.
func (b *Book) AddLevel(order *Order) *Level {
	pm, bestPtr, ltype := b.restingMap(order.Side)
	return b.addLevel(pm, bestPtr, ltype, order.Price)
}

func (b *Book) addLevel(pm *priceMap, bestPtr **Level, ltype LevelType, price uint64) *Level {
	level := b.pool.create(ltype, price)
	pm.insert(level)
	if bestPtr != nil {
		// The map's minimum under the side's own comparator is always its
		// best level; this is the portable fallback for the local-successor
		// optimization the original relies on (see DESIGN.md).
		m, _ := pm.min()
		*bestPtr = m
	}
	return level
}

// AddOrder inserts order into its resting side, joining an existing level
// at the same price or creating one. order.Level must be nil on entry.
func (b *Book) AddOrder(order *Order) LevelUpdate {
	assertf(order.level == nil, "AddOrder: order is already a member of a level")
	assertf(order.Quantity > 0, "AddOrder: order.Quantity must be positive")
	assertf(order.HiddenQuantity+order.VisibleQuantity == order.Quantity,
		"AddOrder: hidden+visible quantity must equal total quantity")

	pm, bestPtr, ltype := b.restingMap(order.Side)

	level, ok := pm.get(order.Price)
	kind := KindUpdate
	if !ok {
		level = b.addLevel(pm, bestPtr, ltype, order.Price)
		kind = KindAdd
	}

	level.TotalVolume += order.Quantity
	level.HiddenVolume += order.HiddenQuantity
	level.VisibleVolume += order.VisibleQuantity
	level.pushBack(order)
	level.OrdersCount++
	order.level = level

	return LevelUpdate{Kind: kind, Level: snapshot(level), Top: level == *bestPtr}
}

// ReduceOrder applies a partial decrement the caller has already reflected
// in order's own fields, passing the deltas that produced it. If the
// decrement drove order.Quantity to zero the order is unlinked from its
// level; if that empties the level, the level is destroyed.
func (b *Book) ReduceOrder(order *Order, deltaQty, deltaHidden, deltaVisible uint64) LevelUpdate {
	assertf(order.level != nil, "ReduceOrder: order is not a member of any level")
	level := order.level
	assertf(deltaQty <= level.TotalVolume, "ReduceOrder: delta quantity exceeds level total volume")
	assertf(deltaHidden <= level.HiddenVolume, "ReduceOrder: delta hidden exceeds level hidden volume")
	assertf(deltaVisible <= level.VisibleVolume, "ReduceOrder: delta visible exceeds level visible volume")

	level.TotalVolume -= deltaQty
	level.HiddenVolume -= deltaHidden
	level.VisibleVolume -= deltaVisible

	if order.Quantity == 0 {
		level.popCurrent(order)
		level.OrdersCount--
		order.level = nil
	}

	// The snapshot is taken after the volume decrement and possible unlink
	// but before any level destruction, so DELETE callers still see the
	// final zeroed level view.
	snap := snapshot(level)

	kind := KindUpdate
	top := level == b.bestOfSide(order.Side)
	if level.TotalVolume == 0 {
		var sideEmptied bool
		order.level, sideEmptied = b.deleteLevel(order.Side, level)
		kind = KindDelete
		// order.level is now nil; short-circuit to false rather than
		// comparing nil to the (possibly also nil) surviving best, so a
		// DELETE that empties the whole side reports top=false instead of
		// a spurious nil==nil match.
		top = !sideEmptied && order.level == b.bestOfSide(order.Side)
	}

	return LevelUpdate{Kind: kind, Level: snap, Top: top}
}

// DeleteOrder unconditionally removes order from its level, decrementing
// volumes by the order's own remaining quantity components regardless of
// whether that quantity is already zero. This is the one place DeleteOrder
// and ReduceOrder genuinely diverge: Reduce only unlinks once the caller's
// delta has zeroed the order, Delete always unlinks.
func (b *Book) DeleteOrder(order *Order) LevelUpdate {
	assertf(order.level != nil, "DeleteOrder: order is not a member of any level")
	level := order.level
	deltaQty, deltaHidden, deltaVisible := order.Quantity, order.HiddenQuantity, order.VisibleQuantity
	assertf(deltaQty <= level.TotalVolume, "DeleteOrder: order quantity exceeds level total volume")
	assertf(deltaHidden <= level.HiddenVolume, "DeleteOrder: order hidden quantity exceeds level hidden volume")
	assertf(deltaVisible <= level.VisibleVolume, "DeleteOrder: order visible quantity exceeds level visible volume")

	level.TotalVolume -= deltaQty
	level.HiddenVolume -= deltaHidden
	level.VisibleVolume -= deltaVisible
	level.popCurrent(order)
	level.OrdersCount--
	order.level = nil

	snap := snapshot(level)

	kind := KindUpdate
	top := level == b.bestOfSide(order.Side)
	if level.TotalVolume == 0 {
		var sideEmptied bool
		order.level, sideEmptied = b.deleteLevel(order.Side, level)
		kind = KindDelete
		top = !sideEmptied && order.level == b.bestOfSide(order.Side)
	}

	return LevelUpdate{Kind: kind, Level: snap, Top: top}
}

// deleteLevel removes an emptied level from side's map, then, if the
// removed level was the cached best, moves the best-price cache to the
// map's new minimum (nil when the map is empty), and releases the level
// back to the pool. It returns nil (which callers
// assign to the order's now-stale level back-pointer) and whether the
// side's map is now empty, so callers can tell a DELETE that vacates the
// whole side apart from one that merely advances the best pointer.
func (b *Book) deleteLevel(side Side, level *Level) (*Level, bool) {
	pm, bestPtr, _ := b.restingMap(side)
	wasBest := *bestPtr == level

	pm.erase(level)
	if wasBest {
		if m, ok := pm.min(); ok {
			*bestPtr = m
		} else {
			*bestPtr = nil
		}
	}
	b.pool.release(level)
	return nil, pm.len() == 0
}

// AddStopLevel creates a fresh stop level tagged with the opposite side's
// LevelType, per the venue's historical convention, and inserts it into
// the appropriate stop map. Unlike AddLevel there is no best-price cache
// to maintain here.
func (b *Book) AddStopLevel(order *Order) *Level {
	pm, ltype := b.stopMap(order.Side)
	level := b.pool.create(ltype, order.Price)
	pm.insert(level)
	return level
}

// AddStopOrder inserts order into the pending stop book for its side. When
// no level exists yet at order.Price, this always creates one via
// AddStopLevel: the original venue's AddStopOrder fell through to the
// resting AddLevel in that case, landing the new level in the wrong map.
// This implementation takes the spec's recommended fix (see DESIGN.md).
func (b *Book) AddStopOrder(order *Order) {
	assertf(order.level == nil, "AddStopOrder: order is already a member of a level")
	assertf(order.Quantity > 0, "AddStopOrder: order.Quantity must be positive")
	assertf(order.HiddenQuantity+order.VisibleQuantity == order.Quantity,
		"AddStopOrder: hidden+visible quantity must equal total quantity")

	pm, _ := b.stopMap(order.Side)
	level, ok := pm.get(order.Price)
	if !ok {
		level = b.AddStopLevel(order)
	}

	level.TotalVolume += order.Quantity
	level.HiddenVolume += order.HiddenQuantity
	level.VisibleVolume += order.VisibleQuantity
	level.pushBack(order)
	level.OrdersCount++
	order.level = level
}

// ReduceStopOrder mirrors ReduceOrder for the stop book: no LevelUpdate is
// returned, since stop levels are not part of the best-price cache the
// caller would need reported back.
func (b *Book) ReduceStopOrder(order *Order, deltaQty, deltaHidden, deltaVisible uint64) {
	assertf(order.level != nil, "ReduceStopOrder: order is not a member of any level")
	level := order.level
	assertf(deltaQty <= level.TotalVolume, "ReduceStopOrder: delta quantity exceeds level total volume")
	assertf(deltaHidden <= level.HiddenVolume, "ReduceStopOrder: delta hidden exceeds level hidden volume")
	assertf(deltaVisible <= level.VisibleVolume, "ReduceStopOrder: delta visible exceeds level visible volume")

	level.TotalVolume -= deltaQty
	level.HiddenVolume -= deltaHidden
	level.VisibleVolume -= deltaVisible

	if order.Quantity == 0 {
		level.popCurrent(order)
		level.OrdersCount--
		order.level = nil
	}

	if level.TotalVolume == 0 {
		order.level = b.deleteStopLevel(order.Side, level)
	}
}

// DeleteStopOrder mirrors DeleteOrder for the stop book: unconditional
// unlink, no LevelUpdate returned.
func (b *Book) DeleteStopOrder(order *Order) {
	assertf(order.level != nil, "DeleteStopOrder: order is not a member of any level")
	level := order.level
	deltaQty, deltaHidden, deltaVisible := order.Quantity, order.HiddenQuantity, order.VisibleQuantity
	assertf(deltaQty <= level.TotalVolume, "DeleteStopOrder: order quantity exceeds level total volume")
	assertf(deltaHidden <= level.HiddenVolume, "DeleteStopOrder: order hidden quantity exceeds level hidden volume")
	assertf(deltaVisible <= level.VisibleVolume, "DeleteStopOrder: order visible quantity exceeds level visible volume")

	level.TotalVolume -= deltaQty
	level.HiddenVolume -= deltaHidden
	level.VisibleVolume -= deltaVisible
	level.popCurrent(order)
	level.OrdersCount--
	order.level = nil

	if level.TotalVolume == 0 {
		order.level = b.deleteStopLevel(order.Side, level)
	}
}

func (b *Book) deleteStopLevel(side Side, level *Level) *Level {
	pm, _ := b.stopMap(side)
	pm.erase(level)
	b.pool.release(level)
	return nil
}
