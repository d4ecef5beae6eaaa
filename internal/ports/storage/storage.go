package storage

import (
	"context"
	"errors"
)

var (
	ErrBucketRequired = errors.New("storage: bucket required")
	ErrKeyRequired    = errors.New("storage: key required")
)

// Store es el almacén clave/valor persistente que usan los módulos de dominio.
// Cada entidad vive en su propio bucket (listings, requests, employees, ...).
//
// Update corre fn dentro de una transacción: si fn devuelve error no queda
// ninguna escritura aplicada. Las llamadas a Update se ejecutan de a una.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

// Tx expone las primitivas por bucket. Values devuelve un snapshot ordenado por key.
type Tx interface {
	Get(bucket, key string) ([]byte, bool, error)
	Put(bucket, key string, value []byte) error
	Delete(bucket, key string) error
	Has(bucket, key string) (bool, error)
	Values(bucket string) ([][]byte, error)
}

func CheckKey(bucket, key string) error {
	if bucket == "" {
		return ErrBucketRequired
	}
	if key == "" {
		return ErrKeyRequired
	}
	return nil
}
