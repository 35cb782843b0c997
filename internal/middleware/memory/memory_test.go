package memory

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	s := NewStorage()

	require.Nil(t, s.Get("key"))

	e := &Entry{Header: http.Header{"Content-Type": {"application/json"}}, Body: []byte(`{}`)}
	s.Set("key", e, time.Minute)
	s.Wait()

	require.Equal(t, e, s.Get("key"))
	require.Nil(t, s.Get("another"))
}

func TestStorage_TTL(t *testing.T) {
	s := NewStorage()

	s.Set("key", &Entry{Body: []byte(`{}`)}, time.Millisecond)
	s.Wait()

	require.Eventually(t, func() bool {
		return s.Get("key") == nil
	}, time.Second, 5*time.Millisecond)
}
