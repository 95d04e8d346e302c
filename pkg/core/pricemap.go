package core

import "github.com/tidwall/btree"

// priceMap is the ordered, comparator-parameterized price-to-level map each
// book side is built on. The side supplies its own less function so that
// the map's minimum is always that side's "best" level: bids order by
// descending price, asks by ascending price, and the stop maps mirror the
// opposite convention.
type priceMap struct {
	tree *btree.BTreeG[*Level]
}

func newPriceMap(less func(a, b *Level) bool) *priceMap {
	return &priceMap{tree: btree.NewBTreeG(less)}
}

func (m *priceMap) get(price uint64) (*Level, bool) {
	return m.tree.Get(&Level{Price: price})
}

func (m *priceMap) insert(l *Level) {
	_, replaced := m.tree.Set(l)
	assertf(!replaced, "insert of duplicate price %d violates price-map uniqueness", l.Price)
}

func (m *priceMap) erase(l *Level) {
	m.tree.Delete(l)
}

func (m *priceMap) min() (*Level, bool) {
	return m.tree.Min()
}

func (m *priceMap) len() int {
	return m.tree.Len()
}

// ascend walks the map best-first, i.e. in the order induced by the side's
// own comparator rather than raw numeric price order.
func (m *priceMap) ascend(fn func(*Level) bool) {
	m.tree.Scan(fn)
}

func bidLess(a, b *Level) bool { return a.Price > b.Price }
func askLess(a, b *Level) bool { return a.Price < b.Price }

// Stop-side orderings mirror the opposite resting-side convention (§2).
func buyStopLess(a, b *Level) bool  { return askLess(a, b) }
func sellStopLess(a, b *Level) bool { return bidLess(a, b) }
