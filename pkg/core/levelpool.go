package core

import "sync"

// levelPool is a sync.Pool-backed typed arena over *Level records, standing
// in for the spec's fixed-size free-list allocator. create returns a
// zeroed, initialized level; release returns a level that must already be
// empty (total_volume == 0, orders_count == 0) back to the pool.
type levelPool struct {
	pool sync.Pool
}

func newLevelPool() *levelPool {
	return &levelPool{
		pool: sync.Pool{
			New: func() any { return &Level{} },
		},
	}
}

func (p *levelPool) create(t LevelType, price uint64) *Level {
	l := p.pool.Get().(*Level)
	*l = Level{Type: t, Price: price}
	return l
}

func (p *levelPool) release(l *Level) {
	assertf(l.TotalVolume == 0 && l.OrdersCount == 0, "release of non-empty level at price %d", l.Price)
	*l = Level{}
	p.pool.Put(l)
}
