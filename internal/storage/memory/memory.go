// Package memory is a process-local implementation of storage.KV.
package memory

import (
	"context"
	"sync"

	"github.com/Decentr-net/blockconnect/internal/storage"
)

type memory struct {
	txMu *sync.Mutex

	mu   *sync.RWMutex
	data map[string][]byte
}

// tx buffers writes until the transaction function returns without error.
// A nil value in writes means the key was deleted.
type tx struct {
	m      memory
	writes map[string][]byte
}

// New creates new empty in-memory kv.
func New() storage.KV {
	return memory{
		txMu: &sync.Mutex{},
		mu:   &sync.RWMutex{},
		data: map[string][]byte{},
	}
}

func (m memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return clone(v), nil
}

func (m memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = clone(value)

	return nil
}

func (m memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

func (m memory) InTx(ctx context.Context, f func(kv storage.KV) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	t := &tx{m: m, writes: map[string][]byte{}}
	if err := f(t); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range t.writes {
		if v == nil {
			delete(m.data, k)
			continue
		}
		m.data[k] = v
	}

	return nil
}

func (m memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (t *tx) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		if v == nil {
			return nil, storage.ErrNotFound
		}
		return clone(v), nil
	}

	return t.m.Get(ctx, key)
}

func (t *tx) Set(_ context.Context, key string, value []byte) error {
	v := clone(value)
	if v == nil {
		v = []byte{}
	}
	t.writes[key] = v

	return nil
}

func (t *tx) Delete(_ context.Context, key string) error {
	t.writes[key] = nil

	return nil
}

// InTx joins the running transaction.
func (t *tx) InTx(_ context.Context, f func(kv storage.KV) error) error {
	return f(t)
}

func (t *tx) Ping(ctx context.Context) error {
	return t.m.Ping(ctx)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out
}
