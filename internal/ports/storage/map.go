package storage

import (
	"encoding/json"
	"fmt"
)

// Map es una vista tipada de un bucket dentro de una transacción.
// Los valores se guardan como JSON.
type Map[V any] struct {
	tx     Tx
	bucket string
}

func NewMap[V any](tx Tx, bucket string) Map[V] {
	return Map[V]{tx: tx, bucket: bucket}
}

func (m Map[V]) Get(key string) (V, bool, error) {
	var v V
	raw, ok, err := m.tx.Get(m.bucket, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("storage: decode %s/%s: %w", m.bucket, key, err)
	}
	return v, true, nil
}

func (m Map[V]) Insert(key string, v V) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s/%s: %w", m.bucket, key, err)
	}
	return m.tx.Put(m.bucket, key, raw)
}

func (m Map[V]) Remove(key string) error {
	return m.tx.Delete(m.bucket, key)
}

func (m Map[V]) ContainsKey(key string) (bool, error) {
	return m.tx.Has(m.bucket, key)
}

func (m Map[V]) Values() ([]V, error) {
	raws, err := m.tx.Values(m.bucket)
	if err != nil {
		return nil, err
	}
	out := make([]V, 0, len(raws))
	for _, raw := range raws {
		var v V
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("storage: decode %s: %w", m.bucket, err)
		}
		out = append(out, v)
	}
	return out, nil
}
