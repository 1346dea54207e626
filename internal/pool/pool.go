// Package pool provides cache for batch pools.
//
// The main use case for this package is to share batch buffers of the same
// size and element type across all lanes of the engine.
package pool

import (
	"reflect"
	"sync"
)

type key struct {
	batchSize int
	elem      reflect.Type
}

var m = struct {
	sync.Mutex
	pools map[key]interface{}
}{
	pools: map[key]interface{}{},
}

// Pool allocates batches of fixed size.
type Pool[T any] struct {
	batchSize int
	pool      sync.Pool
}

// New returns a new pool of batches with provided size.
func New[T any](batchSize int) *Pool[T] {
	p := &Pool[T]{batchSize: batchSize}
	p.pool.New = func() interface{} {
		b := make([]T, 0, batchSize)
		return &b
	}
	return p
}

// Get returns pool for provided batch size and element type. Pools are
// cached internally, so multiple calls with same arguments return the same
// pool instance.
func Get[T any](batchSize int) *Pool[T] {
	k := key{
		batchSize: batchSize,
		elem:      reflect.TypeOf((*T)(nil)).Elem(),
	}
	m.Lock()
	defer m.Unlock()
	if p, ok := m.pools[k]; ok {
		return p.(*Pool[T])
	}
	p := New[T](batchSize)
	m.pools[k] = p
	return p
}

// Wipe cleans up internal cache of pools.
func Wipe() {
	m.Lock()
	defer m.Unlock()
	m.pools = map[key]interface{}{}
}

// BatchSize returns capacity of allocated batches.
func (p *Pool[T]) BatchSize() int {
	return p.batchSize
}

// Alloc returns an empty batch.
func (p *Pool[T]) Alloc() []T {
	return (*p.pool.Get().(*[]T))[:0]
}

// Free puts batch back to the pool. Batches of foreign capacity are
// dropped.
func (p *Pool[T]) Free(b []T) {
	if cap(b) != p.batchSize {
		return
	}
	b = b[:0]
	p.pool.Put(&b)
}
