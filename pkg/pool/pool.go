// Package pool provides a typed sync.Pool whose items are reset on return.
package pool

import (
	"sync"
)

// Resetter is implemented by pooled values; *bytes.Buffer satisfies it.
type Resetter interface {
	Reset()
}

// Pool is a typed wrapper around sync.Pool. Put resets values before
// storing them so Get always returns a clean value.
type Pool[T Resetter] struct {
	pool sync.Pool
}

// New creates a Pool that calls newFunc when it has nothing to hand out.
//
// Example:
//
//	buffers := pool.New(func() *bytes.Buffer {
//	    return bytes.NewBuffer(make([]byte, 0, 4096))
//	})
func New[T Resetter](newFunc func() T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return newFunc()
			},
		},
	}
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put resets x and makes it available to later Get calls.
func (p *Pool[T]) Put(x T) {
	x.Reset()
	p.pool.Put(x)
}
