package listings

import (
	"context"
	"strings"
	"time"

	"pet-adoption-shelter/internal/domain/errs"
	"pet-adoption-shelter/internal/domain/shelter"
	"pet-adoption-shelter/internal/platform/metrics"
	"pet-adoption-shelter/internal/ports/auth"
	"pet-adoption-shelter/internal/ports/storage"

	"github.com/google/uuid"
)

// RequestLookup evita importar el paquete requests (rompe ciclos).
// Se usa para no borrar listings referenciados por solicitudes.
type RequestLookup interface {
	HasRequests(tx storage.Tx, listingID string) (bool, error)
}

type Service struct {
	store    storage.Store
	shelter  *shelter.Service
	requests RequestLookup
	metrics  *metrics.Metrics

	now   func() time.Time
	newID func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store storage.Store, shelterSvc *shelter.Service, opts ...Option) *Service {
	s := &Service{
		store:   store,
		shelter: shelterSvc,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRequestLookup conecta el chequeo de referencias una vez creado requests.Service.
func (s *Service) SetRequestLookup(l RequestLookup) {
	s.requests = l
}

func (s *Service) ListForAdoption(ctx context.Context, caller auth.Principal, in CreateInput) (Listing, error) {
	var created Listing

	err := s.store.Update(ctx, func(tx storage.Tx) error {
		repo := NewRepository(tx)

		st, err := s.shelter.StateTx(tx)
		if err != nil {
			return err
		}
		size, err := repo.ShelterSize()
		if err != nil {
			return err
		}
		if err := ValidatePayload(in, size, st.Capacity); err != nil {
			return err
		}

		created = Listing{
			ID: s.newID(),
			Animal: Animal{
				Name:        strings.TrimSpace(in.Name),
				Species:     strings.TrimSpace(in.Species),
				Breed:       strings.TrimSpace(in.Breed),
				Gender:      Gender(strings.TrimSpace(in.Gender)),
				Age:         in.Age,
				Description: strings.TrimSpace(in.Description),
			},
			Status:    StatusAvailable,
			ListedBy:  caller,
			ListedAt:  s.now(),
			UpdatedAt: nil,
		}

		// uuid v4: una colisión indica un bug, no un caso de negocio
		exists, err := repo.Contains(created.ID)
		if err != nil {
			return err
		}
		if exists {
			return errs.BadRequest("adoption listing id collision, retry")
		}

		return repo.Insert(created)
	})
	if err != nil {
		return Listing{}, err
	}

	s.metrics.Transition("listing", string(StatusAvailable))
	return created, nil
}

func (s *Service) GetAdoptionListing(ctx context.Context, id string) (Listing, error) {
	var l Listing
	err := s.store.View(ctx, func(tx storage.Tx) error {
		var err error
		l, err = s.GetTx(tx, id)
		return err
	})
	return l, err
}

// GetTx lee un listing dentro de una tx ajena.
func (s *Service) GetTx(tx storage.Tx, id string) (Listing, error) {
	if err := ValidateID(id); err != nil {
		return Listing{}, err
	}
	l, ok, err := NewRepository(tx).Get(id)
	if err != nil {
		return Listing{}, err
	}
	if !ok {
		return Listing{}, notFound(id)
	}
	return l, nil
}

// GetAvailableForAdoption devuelve los listings available en orden de key.
func (s *Service) GetAvailableForAdoption(ctx context.Context) ([]Listing, error) {
	out := make([]Listing, 0)
	err := s.store.View(ctx, func(tx storage.Tx) error {
		items, err := NewRepository(tx).All()
		if err != nil {
			return err
		}
		for _, l := range items {
			if l.Status == StatusAvailable {
				out = append(out, l)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RevokeAdoptionListing borra el listing y devuelve el snapshot previo.
func (s *Service) RevokeAdoptionListing(ctx context.Context, id string, caller auth.Principal) (Listing, error) {
	var revoked Listing

	err := s.store.Update(ctx, func(tx storage.Tx) error {
		repo := NewRepository(tx)

		var (
			l     Listing
			found bool
			err   error
		)
		if ValidateID(id) == nil {
			l, found, err = repo.Get(id)
			if err != nil {
				return err
			}
		}

		referenced := false
		if found && s.requests != nil {
			referenced, err = s.requests.HasRequests(tx, id)
			if err != nil {
				return err
			}
		}

		if err := ValidateRevocation(id, l, found, caller, referenced); err != nil {
			return err
		}

		revoked = l
		return repo.Remove(id)
	})
	if err != nil {
		return Listing{}, err
	}

	s.metrics.Transition("listing", "revoked")
	return revoked, nil
}

// CurrentShelterSize cuenta los listings no adoptados.
func (s *Service) CurrentShelterSize(ctx context.Context) (int, error) {
	var n int
	err := s.store.View(ctx, func(tx storage.Tx) error {
		var err error
		n, err = NewRepository(tx).ShelterSize()
		return err
	})
	return n, err
}

// SetStatus cambia el status y updatedAt dentro de la tx del llamador.
// Lo usan las cascadas de requests; una transición inválida aborta la tx.
func (s *Service) SetStatus(tx storage.Tx, id string, next Status, now time.Time) (Listing, error) {
	l, err := s.GetTx(tx, id)
	if err != nil {
		return Listing{}, err
	}
	if !l.Status.CanTransitionTo(next) {
		return Listing{}, errs.BadRequest("adoption listing with status %q cannot move to %q", l.Status, next)
	}

	l.Status = next
	l.UpdatedAt = &now

	if err := NewRepository(tx).Insert(l); err != nil {
		return Listing{}, err
	}
	return l, nil
}
