package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption-shelter/internal/ports/storage"
)

// Store es el almacén in-memory (modo dev y tests).
// Update serializa escrituras y aplica los cambios solo si fn no falla.
type Store struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

func NewStore() *Store {
	return &Store{
		buckets: make(map[string]map[string][]byte),
	}
}

func (s *Store) View(ctx context.Context, fn func(tx storage.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&tx{store: s, readOnly: true})
}

func (s *Store) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	t := &tx{store: s, staged: map[string]map[string][]byte{}}
	if err := fn(t); err != nil {
		// rollback: las escrituras staged se descartan
		return err
	}
	t.commit()
	return nil
}

func (s *Store) Close() error { return nil }

type tx struct {
	store    *Store
	readOnly bool

	// nil en staged[bucket][key] marca un delete pendiente
	staged map[string]map[string][]byte
}

func (t *tx) Get(bucket, key string) ([]byte, bool, error) {
	if err := storage.CheckKey(bucket, key); err != nil {
		return nil, false, err
	}
	if b, ok := t.staged[bucket]; ok {
		if v, ok := b[key]; ok {
			if v == nil {
				return nil, false, nil
			}
			return clone(v), true, nil
		}
	}
	v, ok := t.store.buckets[bucket][key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (t *tx) Put(bucket, key string, value []byte) error {
	if err := storage.CheckKey(bucket, key); err != nil {
		return err
	}
	if t.readOnly {
		return errReadOnly
	}
	if value == nil {
		value = []byte{}
	}
	t.stage(bucket)[key] = clone(value)
	return nil
}

func (t *tx) Delete(bucket, key string) error {
	if err := storage.CheckKey(bucket, key); err != nil {
		return err
	}
	if t.readOnly {
		return errReadOnly
	}
	t.stage(bucket)[key] = nil
	return nil
}

func (t *tx) Has(bucket, key string) (bool, error) {
	_, ok, err := t.Get(bucket, key)
	return ok, err
}

func (t *tx) Values(bucket string) ([][]byte, error) {
	if bucket == "" {
		return nil, storage.ErrBucketRequired
	}

	merged := map[string][]byte{}
	for k, v := range t.store.buckets[bucket] {
		merged[k] = v
	}
	for k, v := range t.staged[bucket] {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}

	// Orden estable por key, igual que el adapter SQL.
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		out = append(out, clone(merged[k]))
	}
	return out, nil
}

func (t *tx) stage(bucket string) map[string][]byte {
	b, ok := t.staged[bucket]
	if !ok {
		b = map[string][]byte{}
		t.staged[bucket] = b
	}
	return b
}

func (t *tx) commit() {
	for bucket, writes := range t.staged {
		dst, ok := t.store.buckets[bucket]
		if !ok {
			dst = map[string][]byte{}
			t.store.buckets[bucket] = dst
		}
		for k, v := range writes {
			if v == nil {
				delete(dst, k)
				continue
			}
			dst[k] = v
		}
	}
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
