package core

// LevelType is a cosmetic tag describing which side created a level. Stop
// levels are tagged with the opposite side's type, a historical quirk the
// spec preserves verbatim (see DESIGN.md).
type LevelType int

const (
	Bid LevelType = iota
	Ask
)

func (t LevelType) String() string {
	if t == Bid {
		return "BID"
	}
	return "ASK"
}

// Level aggregates every order resting at one price on one side. Orders are
// held in insertion order (time priority) via an intrusive doubly-linked
// list; the book owns levels exclusively through the level pool.
type Level struct {
	Type          LevelType
	Price         uint64
	TotalVolume   uint64
	HiddenVolume  uint64
	VisibleVolume uint64
	OrdersCount   uint64

	head, tail *Order
}

// LevelSnapshot is the by-value view of a Level returned in a LevelUpdate.
// It is taken at the moment specified by each operation and never aliases
// the live Level, so callers may retain it past subsequent mutations.
type LevelSnapshot struct {
	Type          LevelType
	Price         uint64
	TotalVolume   uint64
	HiddenVolume  uint64
	VisibleVolume uint64
	OrdersCount   uint64
}

func snapshot(l *Level) LevelSnapshot {
	return LevelSnapshot{
		Type:          l.Type,
		Price:         l.Price,
		TotalVolume:   l.TotalVolume,
		HiddenVolume:  l.HiddenVolume,
		VisibleVolume: l.VisibleVolume,
		OrdersCount:   l.OrdersCount,
	}
}

func (l *Level) pushBack(o *Order) {
	o.prev = l.tail
	o.next = nil
	if l.tail != nil {
		l.tail.next = o
	} else {
		l.head = o
	}
	l.tail = o
}

// popCurrent unlinks o from the level's order list. o must currently be a
// member of this level; the core never calls it otherwise.
func (l *Level) popCurrent(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.prev, o.next = nil, nil
}

// Orders calls fn for every order on the level in time priority, stopping
// early if fn returns false.
func (l *Level) Orders(fn func(*Order) bool) {
	for o := l.head; o != nil; o = o.next {
		if !fn(o) {
			return
		}
	}
}
