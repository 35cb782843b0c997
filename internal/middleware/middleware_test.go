package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/blockconnect/internal/middleware/memory"
)

type mapStorage struct {
	mu sync.Mutex
	m  map[string]*memory.Entry
}

func (s *mapStorage) Get(key string) *memory.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key]
}

func (s *mapStorage) Set(key string, e *memory.Entry, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = e
}

func TestCached(t *testing.T) {
	tt := []struct {
		name  string
		code  int
		calls int
	}{
		{name: "ok is cached", code: http.StatusOK, calls: 1},
		{name: "error is not cached", code: http.StatusInternalServerError, calls: 2},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			var calls int
			h := CachedWith(&mapStorage{m: map[string]*memory.Entry{}}, time.Minute, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(`{"v":1}`))
			})

			for j := 0; j < 2; j++ {
				r := httptest.NewRequest(http.MethodGet, "/v1/users/user-1/stats", nil)
				w := httptest.NewRecorder()
				h(w, r)

				assert.Equal(t, tc.code, w.Code)
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				assert.JSONEq(t, `{"v":1}`, w.Body.String())
			}

			require.Equal(t, tc.calls, calls)
		})
	}
}

func TestBodyLimiter(t *testing.T) {
	h := BodyLimiter(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok")))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLogger(t *testing.T) {
	var l interface{}

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l = GetLogger(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusTeapot, w.Code)
	require.NotNil(t, l)
	require.NotNil(t, GetLogger(context.Background()))
}

func TestRequireToken(t *testing.T) {
	tt := []struct {
		name   string
		token  string
		header string
		code   int
	}{
		{name: "ok", token: "secret", header: "Bearer secret", code: http.StatusOK},
		{name: "no header", token: "secret", header: "", code: http.StatusUnauthorized},
		{name: "wrong token", token: "secret", header: "Bearer guess", code: http.StatusUnauthorized},
		{name: "not configured", token: "", header: "Bearer ", code: http.StatusUnauthorized},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			h := RequireToken(tc.token)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest(http.MethodPost, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, tc.code, w.Code)
		})
	}
}
