package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelPool_CreateInitializesFields(t *testing.T) {
	pool := newLevelPool()
	level := pool.create(Bid, 42)

	assert.Equal(t, Bid, level.Type)
	assert.Equal(t, uint64(42), level.Price)
	assert.Zero(t, level.TotalVolume)
	assert.Zero(t, level.OrdersCount)
}

func TestLevelPool_ReleaseAndReuse(t *testing.T) {
	pool := newLevelPool()
	level := pool.create(Bid, 42)
	pool.release(level)

	reused := pool.create(Ask, 7)
	assert.Equal(t, Ask, reused.Type)
	assert.Equal(t, uint64(7), reused.Price)
}

func TestLevelPool_ReleaseNonEmptyLevelPanics(t *testing.T) {
	pool := newLevelPool()
	level := pool.create(Bid, 42)
	level.TotalVolume = 5

	assert.Panics(t, func() { pool.release(level) })
}
