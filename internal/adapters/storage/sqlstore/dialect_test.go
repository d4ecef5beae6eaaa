package sqlstore

import "testing"

func TestDialect_Rebind(t *testing.T) {
	q := `SELECT value FROM kv_entries WHERE bucket = ? AND entry_key = ?`

	if got := SQLite.Rebind(q); got != q {
		t.Fatalf("sqlite should keep ?, got %s", got)
	}

	want := `SELECT value FROM kv_entries WHERE bucket = $1 AND entry_key = $2`
	if got := Postgres.Rebind(q); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDialect_WriteLock(t *testing.T) {
	if Postgres.WriteLock != "SELECT pg_advisory_xact_lock(7313842)" {
		t.Fatalf("unexpected postgres write lock: %s", Postgres.WriteLock)
	}
	if SQLite.WriteLock == "" {
		t.Fatalf("sqlite needs a write lock statement")
	}
}
