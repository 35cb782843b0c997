// Package middleware contains http middlewares shared by handlers.
package middleware

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/Decentr-net/blockconnect/internal/middleware/memory"
)

// Storage ...
type Storage interface {
	Get(key string) *memory.Entry
	Set(key string, e *memory.Entry, ttl time.Duration)
}

// Cached caches successful responses of handler by request uri for ttl.
func Cached(ttl time.Duration, handler http.HandlerFunc) http.HandlerFunc {
	return CachedWith(memory.NewStorage(), ttl, handler)
}

// CachedWith is Cached over the given storage.
func CachedWith(storage Storage, ttl time.Duration, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if e := storage.Get(r.RequestURI); e != nil {
			copyHeader(w.Header(), e.Header)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(e.Body)
			return
		}

		c := httptest.NewRecorder()
		handler(c, r)

		copyHeader(w.Header(), c.Header())
		w.WriteHeader(c.Code)

		content := c.Body.Bytes()

		if c.Code == http.StatusOK {
			storage.Set(r.RequestURI, &memory.Entry{
				Header: c.Header().Clone(),
				Body:   content,
			}, ttl)
		}

		_, _ = w.Write(content)
	}
}

func copyHeader(dst, src http.Header) {
	for k, v := range src {
		dst[k] = v
	}
}
