package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/blockconnect/internal/entities"
	"github.com/Decentr-net/blockconnect/internal/storage"
)

var errTest = errors.New("test")

func newKV(t *testing.T) storage.KV {
	kv, err := New(":memory:")
	require.NoError(t, err)

	return kv
}

func TestLite_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := newKV(t)

	_, err := s.Get(ctx, "key")
	require.True(t, errors.Is(err, storage.ErrNotFound))

	require.NoError(t, s.Set(ctx, "key", []byte("one")))
	require.NoError(t, s.Set(ctx, "key", []byte("two")))

	v, err := s.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, "two", string(v))

	require.NoError(t, s.Delete(ctx, "key"))
	_, err = s.Get(ctx, "key")
	require.True(t, errors.Is(err, storage.ErrNotFound))

	require.NoError(t, s.Ping(ctx))
}

func TestLite_InTx(t *testing.T) {
	ctx := context.Background()
	s := newKV(t)

	require.NoError(t, s.InTx(ctx, func(kv storage.KV) error {
		return kv.Set(ctx, "key", []byte("committed"))
	}))

	err := s.InTx(ctx, func(kv storage.KV) error {
		require.NoError(t, kv.Set(ctx, "key", []byte("rolled back")))
		return errTest
	})
	require.True(t, errors.Is(err, errTest))

	v, err := s.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, "committed", string(v))
}

func TestLite_Storage(t *testing.T) {
	ctx := context.Background()
	st := storage.New(newKV(t))

	communities, err := st.GetCommunities(ctx)
	require.NoError(t, err)
	require.Len(t, communities, 2)

	c := &entities.Community{ID: "community-3", Name: "Builders", CreatorID: "user-3", Members: []string{"user-3"}, Posts: []string{}}
	require.NoError(t, st.InTx(ctx, func(st storage.Storage) error {
		return st.SaveCommunities(ctx, append(communities, c))
	}))

	communities, err = st.GetCommunities(ctx)
	require.NoError(t, err)
	require.Len(t, communities, 3)
	require.Equal(t, c, communities[2])
}
