package store

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

// collection is the state shared by the catalog stores: a list of records,
// a loading flag and the last error message. Error and items are
// independent: a failed call keeps the previous items.
type collection[T any] struct {
	mu        sync.RWMutex
	items     []T
	isLoading bool
	err       *string
	idOf      func(T) string
}

func newCollection[T any](idOf func(T) string) *collection[T] {
	return &collection[T]{idOf: idOf}
}

func (c *collection[T]) snapshot() ([]T, bool, *string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items), c.isLoading, c.err
}

func (c *collection[T]) startLoading() {
	c.mu.Lock()
	c.isLoading = true
	c.err = nil
	c.mu.Unlock()
}

func (c *collection[T]) clearError() {
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()
}

func (c *collection[T]) stopLoading() {
	c.mu.Lock()
	c.isLoading = false
	c.mu.Unlock()
}

func (c *collection[T]) replace(items []T) {
	c.mu.Lock()
	c.items = slices.Clone(items)
	c.mu.Unlock()
}

func (c *collection[T]) append(item T) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
}

func (c *collection[T]) update(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(item)
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			return
		}
	}
}

func (c *collection[T]) remove(id string) {
	c.mu.Lock()
	c.items = slices.DeleteFunc(c.items, func(it T) bool { return c.idOf(it) == id })
	c.mu.Unlock()
}

func (c *collection[T]) find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if c.idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) setError(msg string) {
	c.mu.Lock()
	c.err = &msg
	c.mu.Unlock()
}

func (c *collection[T]) reset() {
	c.mu.Lock()
	c.items = nil
	c.isLoading = false
	c.err = nil
	c.mu.Unlock()
}

// settle turns a gateway outcome into a Result. A transport error becomes a
// failed Result carrying fallback, which is also recorded as the store error.
func settle[T, V any](c *collection[T], res models.Result[V], err error, fallback string) models.Result[V] {
	if err != nil {
		res = models.Fail[V](common.KindUnknown, fallback)
	}
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = fallback
		}
		c.setError(msg)
	}
	return res
}
