package shelter

import (
	"sort"
	"time"

	"pet-adoption-shelter/internal/ports/auth"
)

// DefaultCapacity es la capacidad inicial si el owner nunca la configuró.
const DefaultCapacity uint16 = 5

// Employee es un miembro del staff autorizado a aprobar/rechazar solicitudes.
type Employee struct {
	Principal auth.Principal
	AddedBy   auth.Principal
	AddedAt   time.Time
}

// State es el agregado de control de acceso del refugio:
// owner (inmutable), employees (append-only) y capacidad.
type State struct {
	Owner     auth.Principal
	Employees map[auth.Principal]Employee
	Capacity  uint16
}

func (s State) IsOwner(p auth.Principal) bool {
	return !s.Owner.IsAnonymous() && p == s.Owner
}

func (s State) IsEmployee(p auth.Principal) bool {
	_, ok := s.Employees[p]
	return ok
}

// EmployeeList devuelve los employees ordenados por principal.
func (s State) EmployeeList() []Employee {
	out := make([]Employee, 0, len(s.Employees))
	for _, e := range s.Employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Principal < out[j].Principal })
	return out
}
