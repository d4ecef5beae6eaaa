package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"pet-adoption-shelter/internal/ports/storage"
)

// Store implementa storage.Store sobre una tabla kv_entries (bucket, entry_key, value).
// Funciona igual con pgx (postgres) y modernc (sqlite); solo cambia el Dialect.
type Store struct {
	db      *sql.DB
	dialect Dialect

	// Serializa Update dentro del proceso; entre procesos lo hace Dialect.WriteLock.
	mu sync.Mutex
}

// New aplica migraciones y devuelve el store listo para usar.
func New(ctx context.Context, db *sql.DB, d Dialect) (*Store, error) {
	if db == nil {
		return nil, errors.New("sqlstore: nil db")
	}
	if err := Migrate(ctx, db, d); err != nil {
		return nil, fmt.Errorf("sqlstore: migrate: %w", err)
	}
	return &Store{db: db, dialect: d}, nil
}

func (s *Store) View(ctx context.Context, fn func(tx storage.Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx, false, fn)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) run(ctx context.Context, readOnly bool, fn func(tx storage.Tx) error) (retErr error) {
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: readOnly && s.dialect.Name == Postgres.Name})
	if err != nil {
		return fmt.Errorf("sqlstore: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = sqlTx.Rollback()
		}
	}()

	if !readOnly && s.dialect.WriteLock != "" {
		if _, err := sqlTx.ExecContext(ctx, s.dialect.WriteLock); err != nil {
			return fmt.Errorf("sqlstore: write lock: %w", err)
		}
	}

	t := &tx{ctx: ctx, tx: sqlTx, d: s.dialect, readOnly: readOnly}
	if err := fn(t); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("sqlstore: commit: %w", err)
	}
	return nil
}

type tx struct {
	ctx      context.Context
	tx       *sql.Tx
	d        Dialect
	readOnly bool
}

var errReadOnly = errors.New("sqlstore: write in read-only transaction")

func (t *tx) Get(bucket, key string) ([]byte, bool, error) {
	if err := storage.CheckKey(bucket, key); err != nil {
		return nil, false, err
	}
	var v string
	err := t.tx.QueryRowContext(t.ctx,
		t.d.Rebind(`SELECT value FROM kv_entries WHERE bucket = ? AND entry_key = ?`),
		bucket, key,
	).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(v), true, nil
}

func (t *tx) Put(bucket, key string, value []byte) error {
	if err := storage.CheckKey(bucket, key); err != nil {
		return err
	}
	if t.readOnly {
		return errReadOnly
	}
	_, err := t.tx.ExecContext(t.ctx, t.d.Rebind(`
		INSERT INTO kv_entries (bucket, entry_key, value) VALUES (?, ?, ?)
		ON CONFLICT (bucket, entry_key) DO UPDATE SET value = excluded.value
	`), bucket, key, string(value))
	if err != nil {
		return fmt.Errorf("sqlstore: put %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (t *tx) Delete(bucket, key string) error {
	if err := storage.CheckKey(bucket, key); err != nil {
		return err
	}
	if t.readOnly {
		return errReadOnly
	}
	_, err := t.tx.ExecContext(t.ctx,
		t.d.Rebind(`DELETE FROM kv_entries WHERE bucket = ? AND entry_key = ?`),
		bucket, key,
	)
	return err
}

func (t *tx) Has(bucket, key string) (bool, error) {
	_, ok, err := t.Get(bucket, key)
	return ok, err
}

func (t *tx) Values(bucket string) ([][]byte, error) {
	if bucket == "" {
		return nil, storage.ErrBucketRequired
	}
	rows, err := t.tx.QueryContext(t.ctx,
		t.d.Rebind(`SELECT value FROM kv_entries WHERE bucket = ? ORDER BY `+t.d.KeyOrder),
		bucket,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([][]byte, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, []byte(v))
	}
	return out, rows.Err()
}
