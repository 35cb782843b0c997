// Package memory is a ristretto based response storage.
package memory

import (
	"net/http"
	"time"

	"github.com/dgraph-io/ristretto"
)

const (
	numCounters = 1e4
	maxCost     = 1 << 24
	bufferItems = 64
)

// Entry is a cached response.
type Entry struct {
	Header http.Header
	Body   []byte
}

// Storage ...
type Storage struct {
	c *ristretto.Cache
}

// NewStorage returns new instance of Storage.
func NewStorage() *Storage {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: bufferItems,
	})
	if err != nil {
		// config is constant so it can't be invalid
		panic(err)
	}

	return &Storage{c: c}
}

// Get returns entry by key or nil when there is no one.
func (s *Storage) Get(key string) *Entry {
	v, ok := s.c.Get(key)
	if !ok {
		return nil
	}

	e, _ := v.(*Entry)

	return e
}

// Set puts entry with ttl and waits until it is visible to Get. Cost of the entry is its body size.
func (s *Storage) Set(key string, e *Entry, ttl time.Duration) {
	if s.c.SetWithTTL(key, e, int64(len(e.Body)), ttl) {
		s.c.Wait()
	}
}

// Wait blocks until all buffered writes are applied.
func (s *Storage) Wait() {
	s.c.Wait()
}
