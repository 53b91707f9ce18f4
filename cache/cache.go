// Package cache wraps ccache with a mutex so concurrent Fetch calls for
// the same key resolve to a single loader invocation.
package cache

import (
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"
)

const DefaultEntityTTL = 1 * time.Hour

type Cache[T any] struct {
	c   *ccache.Cache[T]
	mux sync.Mutex
}

func New[T any](maxSize int64) *Cache[T] {
	c := ccache.New(
		ccache.Configure[T]().
			MaxSize(maxSize).
			GetsPerPromote(3).
			ItemsToPrune(1),
	)
	return &Cache[T]{c: c, mux: sync.Mutex{}}
}

func (c *Cache[T]) Fetch(k string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	item, err := c.c.Fetch(k, ttl, fetch)
	if nil != err {
		var zero T
		return zero, err
	}
	return item.Value(), nil
}
