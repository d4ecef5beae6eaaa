package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect cubre las diferencias entre Postgres y SQLite que nos importan:
// placeholders y orden binario de keys.
type Dialect struct {
	Name string

	// DollarPlaceholders: $1,$2 (postgres) en vez de ? (sqlite)
	DollarPlaceholders bool

	// KeyOrder es la expresión ORDER BY para iterar keys en orden de bytes.
	KeyOrder string

	// WriteLock se ejecuta como primera sentencia de cada Update y toma el
	// lock de escritura de la base, no solo del proceso (CLI y varias
	// réplicas de serve comparten la misma base).
	WriteLock string
}

// writeLockKey identifica el advisory lock de Update en Postgres.
const writeLockKey = 7_313_842

var (
	Postgres = Dialect{
		Name:               "postgres",
		DollarPlaceholders: true,
		KeyOrder:           `entry_key COLLATE "C"`,
		WriteLock:          "SELECT pg_advisory_xact_lock(" + strconv.Itoa(writeLockKey) + ")",
	}
	SQLite = Dialect{
		Name:     "sqlite",
		KeyOrder: "entry_key",
		// cualquier escritura abre la transacción como writer (RESERVED) antes
		// de leer; así busy_timeout espera en vez de fallar con SQLITE_BUSY.
		WriteLock: "DELETE FROM kv_entries WHERE 1 = 0",
	}
)

// Rebind traduce una query escrita con ? al estilo del dialecto.
func (d Dialect) Rebind(q string) string {
	if !d.DollarPlaceholders {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
