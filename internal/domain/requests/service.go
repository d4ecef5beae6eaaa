package requests

import (
	"context"
	"time"

	"pet-adoption-shelter/internal/domain/errs"
	"pet-adoption-shelter/internal/domain/listings"
	"pet-adoption-shelter/internal/domain/shelter"
	"pet-adoption-shelter/internal/platform/metrics"
	"pet-adoption-shelter/internal/ports/auth"
	"pet-adoption-shelter/internal/ports/storage"

	"github.com/google/uuid"
)

// Service maneja el ciclo de vida de las solicitudes. Cada cambio de la
// solicitud y su cascada sobre el listing se hacen en la misma tx.
type Service struct {
	store    storage.Store
	shelter  *shelter.Service
	listings *listings.Service
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

func NewService(store storage.Store, shelterSvc *shelter.Service, listingsSvc *listings.Service, opts ...Option) *Service {
	s := &Service{
		store:    store,
		shelter:  shelterSvc,
		listings: listingsSvc,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitAdoptionRequest crea la solicitud en pending y pone el listing on hold.
func (s *Service) SubmitAdoptionRequest(ctx context.Context, caller auth.Principal, listingID string) (Request, error) {
	var created Request

	err := s.store.Update(ctx, func(tx storage.Tx) error {
		var (
			l     listings.Listing
			found bool
			err   error
		)
		if listings.ValidateID(listingID) == nil {
			l, found, err = listings.NewRepository(tx).Get(listingID)
			if err != nil {
				return err
			}
		}
		if err := listings.ValidateSubmission(listingID, l, found); err != nil {
			return err
		}

		now := s.now()
		created = Request{
			ID:                s.newID(),
			AdoptionListingID: listingID,
			Status:            StatusPending,
			SubmittedBy:       caller,
			SubmittedAt:       now,
		}

		repo := NewRepository(tx)
		exists, err := repo.Contains(created.ID)
		if err != nil {
			return err
		}
		if exists {
			return errs.BadRequest("adoption request id collision, retry")
		}
		if err := repo.Insert(created); err != nil {
			return err
		}

		_, err = s.listings.SetStatus(tx, listingID, listings.StatusOnHold, now)
		return err
	})
	if err != nil {
		return Request{}, err
	}

	s.metrics.Transition("request", string(StatusPending))
	s.metrics.Transition("listing", string(listings.StatusOnHold))
	return created, nil
}

// ApproveAdoptionRequest: pending -> approved y el listing pasa a adopted
// (libera lugar en el refugio).
func (s *Service) ApproveAdoptionRequest(ctx context.Context, caller auth.Principal, id string) (Request, error) {
	return s.process(ctx, caller, id, ActionApprove, listings.StatusAdopted)
}

// RejectAdoptionRequest: pending -> rejected y el listing vuelve a available.
func (s *Service) RejectAdoptionRequest(ctx context.Context, caller auth.Principal, id string) (Request, error) {
	return s.process(ctx, caller, id, ActionReject, listings.StatusAvailable)
}

func (s *Service) process(ctx context.Context, caller auth.Principal, id string, action Action, listingStatus listings.Status) (Request, error) {
	var updated Request

	err := s.store.Update(ctx, func(tx storage.Tx) error {
		st, err := s.shelter.StateTx(tx)
		if err != nil {
			return err
		}

		repo := NewRepository(tx)

		var (
			req   Request
			found bool
		)
		if ValidateID(id) == nil {
			req, found, err = repo.Get(id)
			if err != nil {
				return err
			}
		}
		if err := ValidateProcessing(st.IsEmployee(caller), id, req, found, action); err != nil {
			return err
		}

		now := s.now()
		req.Status = action.target()
		req.UpdatedAt = &now
		if err := repo.Insert(req); err != nil {
			return err
		}

		if _, err := s.listings.SetStatus(tx, req.AdoptionListingID, listingStatus, now); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return Request{}, err
	}

	s.metrics.Transition("request", string(updated.Status))
	s.metrics.Transition("listing", string(listingStatus))
	return updated, nil
}

func (s *Service) GetAdoptionRequest(ctx context.Context, id string) (Request, error) {
	if err := ValidateID(id); err != nil {
		return Request{}, err
	}

	var req Request
	err := s.store.View(ctx, func(tx storage.Tx) error {
		var (
			found bool
			err   error
		)
		req, found, err = NewRepository(tx).Get(id)
		if err != nil {
			return err
		}
		if !found {
			return notFound(id)
		}
		return nil
	})
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

// ListByListing devuelve todas las solicitudes (cualquier status) de un listing.
func (s *Service) ListByListing(ctx context.Context, listingID string) ([]Request, error) {
	if err := listings.ValidateID(listingID); err != nil {
		return nil, err
	}

	var out []Request
	err := s.store.View(ctx, func(tx storage.Tx) error {
		var err error
		out, err = NewRepository(tx).ByListing(listingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HasRequests implementa listings.RequestLookup.
func (s *Service) HasRequests(tx storage.Tx, listingID string) (bool, error) {
	items, err := NewRepository(tx).ByListing(listingID)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}
