package shelter

import (
	"pet-adoption-shelter/internal/ports/auth"
	"pet-adoption-shelter/internal/ports/storage"
)

const (
	bucketOwner     = "shelter_owner"
	bucketEmployees = "shelter_employees"
	bucketSettings  = "shelter_settings"

	keyOwner    = "owner"
	keyCapacity = "capacity"
)

// Repository es la vista tipada de los buckets del roster dentro de una tx.
type Repository struct {
	owner     storage.Map[auth.Principal]
	employees storage.Map[Employee]
	settings  storage.Map[uint16]
}

func NewRepository(tx storage.Tx) Repository {
	return Repository{
		owner:     storage.NewMap[auth.Principal](tx, bucketOwner),
		employees: storage.NewMap[Employee](tx, bucketEmployees),
		settings:  storage.NewMap[uint16](tx, bucketSettings),
	}
}

func (r Repository) Owner() (auth.Principal, bool, error) {
	return r.owner.Get(keyOwner)
}

func (r Repository) SetOwner(p auth.Principal) error {
	return r.owner.Insert(keyOwner, p)
}

func (r Repository) InsertEmployee(e Employee) error {
	return r.employees.Insert(string(e.Principal), e)
}

func (r Repository) Employees() ([]Employee, error) {
	return r.employees.Values()
}

func (r Repository) Capacity() (uint16, bool, error) {
	return r.settings.Get(keyCapacity)
}

func (r Repository) SetCapacity(c uint16) error {
	return r.settings.Insert(keyCapacity, c)
}

// Load arma el State completo; si la capacidad no está guardada usa defaultCapacity.
func (r Repository) Load(defaultCapacity uint16) (State, error) {
	owner, _, err := r.Owner()
	if err != nil {
		return State{}, err
	}

	list, err := r.Employees()
	if err != nil {
		return State{}, err
	}
	employees := make(map[auth.Principal]Employee, len(list))
	for _, e := range list {
		employees[e.Principal] = e
	}

	capacity, ok, err := r.Capacity()
	if err != nil {
		return State{}, err
	}
	if !ok {
		capacity = defaultCapacity
	}

	return State{
		Owner:     owner,
		Employees: employees,
		Capacity:  capacity,
	}, nil
}
