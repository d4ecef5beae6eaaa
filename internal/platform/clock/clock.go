package clock

import (
	"sync"
	"time"
)

// Monotonic devuelve un reloj que nunca retrocede: si el reloj de pared
// vuelve atrás, repite el último instante entregado.
func Monotonic(base func() time.Time) func() time.Time {
	if base == nil {
		base = time.Now
	}
	var (
		mu   sync.Mutex
		last time.Time
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		now := base().UTC()
		if now.Before(last) {
			return last
		}
		last = now
		return now
	}
}
