package shelter

import (
	"context"
	"errors"
	"time"

	"pet-adoption-shelter/internal/domain/errs"
	"pet-adoption-shelter/internal/ports/auth"
	"pet-adoption-shelter/internal/ports/storage"
)

var ErrOwnerNotInitialized = errors.New("shelter owner not initialized")

type Service struct {
	store           storage.Store
	now             func() time.Time
	defaultCapacity uint16
}

func NewService(store storage.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:           store,
		now:             now,
		defaultCapacity: DefaultCapacity,
	}
}

// SetDefaultCapacity cambia la capacidad usada mientras el owner no configure una.
func (s *Service) SetDefaultCapacity(c uint16) {
	s.defaultCapacity = c
}

// Init registra al owner la primera vez. Si ya hay owner guardado se respeta
// (es inmutable) y se devuelve el guardado.
func (s *Service) Init(ctx context.Context, owner auth.Principal) (auth.Principal, error) {
	var stored auth.Principal

	err := s.store.Update(ctx, func(tx storage.Tx) error {
		repo := NewRepository(tx)

		current, ok, err := repo.Owner()
		if err != nil {
			return err
		}
		if ok && !current.IsAnonymous() {
			stored = current
			return nil
		}

		if owner.IsAnonymous() {
			return errs.BadRequest("owner cannot be anonymous")
		}
		stored = owner
		return repo.SetOwner(owner)
	})
	if err != nil {
		return "", err
	}
	return stored, nil
}

// State carga el agregado en una transacción de lectura.
func (s *Service) State(ctx context.Context) (State, error) {
	var st State
	err := s.store.View(ctx, func(tx storage.Tx) error {
		var err error
		st, err = s.StateTx(tx)
		return err
	})
	return st, err
}

// StateTx carga el agregado dentro de una tx ajena (listings/requests).
func (s *Service) StateTx(tx storage.Tx) (State, error) {
	st, err := NewRepository(tx).Load(s.defaultCapacity)
	if err != nil {
		return State{}, err
	}
	if st.Owner.IsAnonymous() {
		return State{}, ErrOwnerNotInitialized
	}
	return st, nil
}

func (s *Service) AddEmployee(ctx context.Context, caller, candidate auth.Principal) (Employee, error) {
	var added Employee

	err := s.store.Update(ctx, func(tx storage.Tx) error {
		st, err := s.StateTx(tx)
		if err != nil {
			return err
		}

		// Only an owner can add new employees
		if !st.IsOwner(caller) {
			return errs.Forbidden("only an owner can add an employee")
		}
		if candidate.IsAnonymous() {
			return errs.BadRequest("employee cannot be anonymous")
		}
		if st.IsEmployee(candidate) {
			return errs.BadRequest("%q is already an employee", candidate.String())
		}

		added = Employee{
			Principal: candidate,
			AddedBy:   caller,
			AddedAt:   s.now(),
		}
		return NewRepository(tx).InsertEmployee(added)
	})
	if err != nil {
		return Employee{}, err
	}
	return added, nil
}

func (s *Service) ListEmployees(ctx context.Context, caller auth.Principal) ([]Employee, error) {
	st, err := s.State(ctx)
	if err != nil {
		return nil, err
	}
	if !st.IsOwner(caller) {
		return nil, errs.Forbidden("only an owner can list employees")
	}
	return st.EmployeeList(), nil
}

func (s *Service) SetShelterCapacity(ctx context.Context, caller auth.Principal, capacity uint16) error {
	return s.store.Update(ctx, func(tx storage.Tx) error {
		st, err := s.StateTx(tx)
		if err != nil {
			return err
		}
		if !st.IsOwner(caller) {
			return errs.Forbidden("only an owner can set shelter capacity")
		}
		return NewRepository(tx).SetCapacity(capacity)
	})
}

func (s *Service) GetShelterCapacity(ctx context.Context) (uint16, error) {
	st, err := s.State(ctx)
	if err != nil {
		return 0, err
	}
	return st.Capacity, nil
}
