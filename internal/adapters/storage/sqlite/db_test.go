package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"pet-adoption-shelter/internal/ports/storage"
)

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shelter.db")

	s, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	err = s.Update(ctx, func(tx storage.Tx) error {
		if err := tx.Put("listings", "b", []byte(`"B"`)); err != nil {
			return err
		}
		return tx.Put("listings", "a", []byte(`"A"`))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// reabrir: migraciones idempotentes + datos intactos
	s2, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	err = s2.View(ctx, func(tx storage.Tx) error {
		vals, err := tx.Values("listings")
		if err != nil {
			return err
		}
		if len(vals) != 2 || string(vals[0]) != `"A"` || string(vals[1]) != `"B"` {
			t.Fatalf("unexpected values after reopen: %q", vals)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestStore_UpdateRollsBack(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(ctx, filepath.Join(t.TempDir(), "shelter.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	boom := errors.New("boom")
	err = s.Update(ctx, func(tx storage.Tx) error {
		if err := tx.Put("requests", "r1", []byte(`{}`)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	_ = s.View(ctx, func(tx storage.Tx) error {
		ok, err := tx.Has("requests", "r1")
		if err != nil {
			t.Fatalf("Has: %v", err)
		}
		if ok {
			t.Fatalf("expected rollback of r1")
		}
		return nil
	})
}

func TestStore_PutOverwritesAndDeletes(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(ctx, filepath.Join(t.TempDir(), "shelter.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	_ = s.Update(ctx, func(tx storage.Tx) error {
		_ = tx.Put("listings", "a", []byte(`1`))
		return tx.Put("listings", "a", []byte(`2`))
	})
	_ = s.View(ctx, func(tx storage.Tx) error {
		v, ok, err := tx.Get("listings", "a")
		if err != nil || !ok || string(v) != "2" {
			t.Fatalf("expected overwritten value 2, got %q ok=%v err=%v", v, ok, err)
		}
		return nil
	})

	_ = s.Update(ctx, func(tx storage.Tx) error {
		return tx.Delete("listings", "a")
	})
	_ = s.View(ctx, func(tx storage.Tx) error {
		if ok, _ := tx.Has("listings", "a"); ok {
			t.Fatalf("expected key deleted")
		}
		return nil
	})
}

// increment hace read-modify-write de un contador dentro de un Update.
func increment(ctx context.Context, s storage.Store) error {
	return s.Update(ctx, func(tx storage.Tx) error {
		v, _, err := tx.Get("counters", "n")
		if err != nil {
			return err
		}
		n := 0
		if len(v) > 0 {
			if n, err = strconv.Atoi(string(v)); err != nil {
				return err
			}
		}
		return tx.Put("counters", "n", []byte(strconv.Itoa(n+1)))
	})
}

// Dos handles sobre el mismo archivo simulan serve + CLI en procesos distintos.
func TestStore_UpdatesSerializeAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shelter.db")

	a, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("NewStore a: %v", err)
	}
	defer a.Close()
	b, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("NewStore b: %v", err)
	}
	defer b.Close()

	const perStore = 20
	var wg sync.WaitGroup
	errCh := make(chan error, 2*perStore)
	for _, s := range []storage.Store{a, b} {
		wg.Add(1)
		go func(s storage.Store) {
			defer wg.Done()
			for i := 0; i < perStore; i++ {
				if err := increment(ctx, s); err != nil {
					errCh <- err
				}
			}
		}(s)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("increment: %v", err)
	}

	_ = a.View(ctx, func(tx storage.Tx) error {
		v, _, err := tx.Get("counters", "n")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if string(v) != strconv.Itoa(2*perStore) {
			t.Fatalf("expected %d, got %s", 2*perStore, v)
		}
		return nil
	})
}
