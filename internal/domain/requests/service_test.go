package requests

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pet-adoption-shelter/internal/adapters/storage/memory"
	"pet-adoption-shelter/internal/domain/errs"
	"pet-adoption-shelter/internal/domain/listings"
	"pet-adoption-shelter/internal/domain/shelter"
	"pet-adoption-shelter/internal/ports/auth"
	"pet-adoption-shelter/internal/ports/storage"
)

const (
	owner    auth.Principal = "owner-1"
	employee auth.Principal = "employee-1"
	alice    auth.Principal = "alice"
	bob      auth.Principal = "bob"
)

type fixture struct {
	store    storage.Store
	shelter  *shelter.Service
	listings *listings.Service
	requests *Service
}

func newFixture(t *testing.T, store storage.Store) fixture {
	t.Helper()
	ctx := context.Background()

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	sh := shelter.NewService(store, clock)
	if _, err := sh.Init(ctx, owner); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if _, err := sh.AddEmployee(ctx, owner, employee); err != nil {
		t.Fatalf("AddEmployee error: %v", err)
	}

	ls := listings.NewService(store, sh, listings.WithClock(clock))
	rs := NewService(store, sh, ls, WithClock(clock))
	ls.SetRequestLookup(rs)

	seq := 0
	rs.newID = func() string {
		seq++
		return fmt.Sprintf("request-%02d", seq)
	}

	return fixture{store: store, shelter: sh, listings: ls, requests: rs}
}

func dog() listings.CreateInput {
	return listings.CreateInput{Name: "Toby", Species: "dog", Breed: "beagle", Gender: "male", Age: 2}
}

func TestAdoptionScenario_CapacityOne(t *testing.T) {
	f := newFixture(t, memory.NewStore())
	ctx := context.Background()

	if err := f.shelter.SetShelterCapacity(ctx, owner, 1); err != nil {
		t.Fatalf("SetShelterCapacity error: %v", err)
	}

	l, err := f.listings.ListForAdoption(ctx, alice, dog())
	if err != nil {
		t.Fatalf("ListForAdoption error: %v", err)
	}

	if _, err := f.listings.ListForAdoption(ctx, alice, dog()); err == nil || err.Error() != "no more space in the shelter" {
		t.Fatalf("expected no more space, got %v", err)
	}

	req, err := f.requests.SubmitAdoptionRequest(ctx, bob, l.ID)
	if err != nil {
		t.Fatalf("SubmitAdoptionRequest error: %v", err)
	}
	if req.Status != StatusPending || req.SubmittedBy != bob {
		t.Fatalf("unexpected request: %+v", req)
	}

	got, _ := f.listings.GetAdoptionListing(ctx, l.ID)
	if got.Status != listings.StatusOnHold || got.UpdatedAt == nil {
		t.Fatalf("expected listing on hold, got %+v", got)
	}

	// on hold sigue ocupando lugar
	if _, err := f.listings.ListForAdoption(ctx, alice, dog()); !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("expected BadRequest while on hold, got %v", err)
	}

	approved, err := f.requests.ApproveAdoptionRequest(ctx, employee, req.ID)
	if err != nil {
		t.Fatalf("ApproveAdoptionRequest error: %v", err)
	}
	if approved.Status != StatusApproved || approved.UpdatedAt == nil {
		t.Fatalf("unexpected approved request: %+v", approved)
	}

	got, _ = f.listings.GetAdoptionListing(ctx, l.ID)
	if got.Status != listings.StatusAdopted {
		t.Fatalf("expected adopted, got %q", got.Status)
	}

	// adopted libera el lugar
	if _, err := f.listings.ListForAdoption(ctx, alice, dog()); err != nil {
		t.Fatalf("expected space after adoption, got %v", err)
	}
}

func TestReject_ReturnsListingToAvailable(t *testing.T) {
	f := newFixture(t, memory.NewStore())
	ctx := context.Background()

	l, _ := f.listings.ListForAdoption(ctx, alice, dog())
	req, _ := f.requests.SubmitAdoptionRequest(ctx, bob, l.ID)

	rejected, err := f.requests.RejectAdoptionRequest(ctx, employee, req.ID)
	if err != nil {
		t.Fatalf("RejectAdoptionRequest error: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Fatalf("expected rejected, got %q", rejected.Status)
	}

	got, _ := f.listings.GetAdoptionListing(ctx, l.ID)
	if got.Status != listings.StatusAvailable {
		t.Fatalf("expected available, got %q", got.Status)
	}

	// se puede volver a pedir
	if _, err := f.requests.SubmitAdoptionRequest(ctx, alice, l.ID); err != nil {
		t.Fatalf("resubmit error: %v", err)
	}

	items, _ := f.requests.ListByListing(ctx, l.ID)
	if len(items) != 2 {
		t.Fatalf("expected 2 requests for listing, got %d", len(items))
	}
}

func TestProcessing_OnlyOnce(t *testing.T) {
	f := newFixture(t, memory.NewStore())
	ctx := context.Background()

	l, _ := f.listings.ListForAdoption(ctx, alice, dog())
	req, _ := f.requests.SubmitAdoptionRequest(ctx, bob, l.ID)
	if _, err := f.requests.ApproveAdoptionRequest(ctx, employee, req.ID); err != nil {
		t.Fatalf("ApproveAdoptionRequest error: %v", err)
	}

	_, err := f.requests.RejectAdoptionRequest(ctx, employee, req.ID)
	if !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
	if err.Error() != `adoption request with status "approved" cannot be rejected` {
		t.Fatalf("unexpected message %q", err.Error())
	}

	_, err = f.requests.ApproveAdoptionRequest(ctx, employee, req.ID)
	if !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}

	got, _ := f.listings.GetAdoptionListing(ctx, l.ID)
	if got.Status != listings.StatusAdopted {
		t.Fatalf("listing must stay adopted, got %q", got.Status)
	}
}

func TestProcessing_NonEmployeeLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t, memory.NewStore())
	ctx := context.Background()

	l, _ := f.listings.ListForAdoption(ctx, alice, dog())
	req, _ := f.requests.SubmitAdoptionRequest(ctx, bob, l.ID)

	// ni el owner es employee
	for _, caller := range []auth.Principal{owner, bob, auth.Anonymous} {
		if _, err := f.requests.ApproveAdoptionRequest(ctx, caller, req.ID); !errors.Is(err, errs.ErrForbidden) {
			t.Fatalf("%s approve: expected Forbidden, got %v", caller, err)
		}
		if _, err := f.requests.RejectAdoptionRequest(ctx, caller, req.ID); !errors.Is(err, errs.ErrForbidden) {
			t.Fatalf("%s reject: expected Forbidden, got %v", caller, err)
		}
	}

	got, _ := f.requests.GetAdoptionRequest(ctx, req.ID)
	if got.Status != StatusPending || got.UpdatedAt != nil {
		t.Fatalf("request must be unchanged, got %+v", got)
	}
	gl, _ := f.listings.GetAdoptionListing(ctx, l.ID)
	if gl.Status != listings.StatusOnHold {
		t.Fatalf("listing must be unchanged, got %q", gl.Status)
	}
}

func TestProcessing_ForbiddenBeforeNotFound(t *testing.T) {
	f := newFixture(t, memory.NewStore())
	ctx := context.Background()

	if _, err := f.requests.ApproveAdoptionRequest(ctx, bob, "missing"); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if _, err := f.requests.ApproveAdoptionRequest(ctx, employee, "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := f.requests.RejectAdoptionRequest(ctx, employee, ""); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected NotFound for empty id, got %v", err)
	}
}

func TestSubmit_Errors(t *testing.T) {
	f := newFixture(t, memory.NewStore())
	ctx := context.Background()

	if _, err := f.requests.SubmitAdoptionRequest(ctx, bob, ""); !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
	if _, err := f.requests.SubmitAdoptionRequest(ctx, bob, "nope"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	l, _ := f.listings.ListForAdoption(ctx, alice, dog())
	if _, err := f.requests.SubmitAdoptionRequest(ctx, bob, l.ID); err != nil {
		t.Fatalf("SubmitAdoptionRequest error: %v", err)
	}
	_, err := f.requests.SubmitAdoptionRequest(ctx, alice, l.ID)
	if err == nil || err.Error() != `adoption request for adoption listings with status "on hold" cannot be submitted` {
		t.Fatalf("expected on hold rejection, got %v", err)
	}
}

func TestRevokeThenResubmit_NotFound(t *testing.T) {
	f := newFixture(t, memory.NewStore())
	ctx := context.Background()

	l, _ := f.listings.ListForAdoption(ctx, alice, dog())
	if _, err := f.listings.RevokeAdoptionListing(ctx, l.ID, alice); err != nil {
		t.Fatalf("RevokeAdoptionListing error: %v", err)
	}

	if _, err := f.requests.SubmitAdoptionRequest(ctx, bob, l.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestRevoke_ListingWithRequestsIsKept(t *testing.T) {
	f := newFixture(t, memory.NewStore())
	ctx := context.Background()

	l, _ := f.listings.ListForAdoption(ctx, alice, dog())
	req, _ := f.requests.SubmitAdoptionRequest(ctx, bob, l.ID)
	if _, err := f.requests.RejectAdoptionRequest(ctx, employee, req.ID); err != nil {
		t.Fatalf("RejectAdoptionRequest error: %v", err)
	}

	// available de nuevo, pero referenciado por una solicitud
	if _, err := f.listings.RevokeAdoptionListing(ctx, l.ID, alice); !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
	if _, err := f.requests.GetAdoptionRequest(ctx, req.ID); err != nil {
		t.Fatalf("request must still resolve: %v", err)
	}
}

func TestGetAdoptionRequest(t *testing.T) {
	f := newFixture(t, memory.NewStore())
	ctx := context.Background()

	if _, err := f.requests.GetAdoptionRequest(ctx, ""); err == nil || err.Error() != "adoption request ID is missing" {
		t.Fatalf("expected missing id, got %v", err)
	}
	_, err := f.requests.GetAdoptionRequest(ctx, "x")
	if !errors.Is(err, errs.ErrNotFound) || err.Error() != `adoption request with id "x" not found` {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

// failingStore hace fallar las escrituras al bucket de listings dentro de Update.
type failingStore struct {
	storage.Store
	fail bool
}

type failingTx struct {
	storage.Tx
}

var errBoom = errors.New("boom")

func (tx failingTx) Put(bucket, key string, value []byte) error {
	if bucket == "adoption_listings" {
		return errBoom
	}
	return tx.Tx.Put(bucket, key, value)
}

func (s *failingStore) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	if !s.fail {
		return s.Store.Update(ctx, fn)
	}
	return s.Store.Update(ctx, func(tx storage.Tx) error {
		return fn(failingTx{Tx: tx})
	})
}

func TestSubmit_CascadeFailureRollsBack(t *testing.T) {
	store := &failingStore{Store: memory.NewStore()}
	f := newFixture(t, store)
	ctx := context.Background()

	l, err := f.listings.ListForAdoption(ctx, alice, dog())
	if err != nil {
		t.Fatalf("ListForAdoption error: %v", err)
	}

	store.fail = true
	if _, err := f.requests.SubmitAdoptionRequest(ctx, bob, l.ID); !errors.Is(err, errBoom) {
		t.Fatalf("expected store error, got %v", err)
	}
	store.fail = false

	if _, err := f.requests.GetAdoptionRequest(ctx, "request-01"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("request must not be persisted, got %v", err)
	}
	got, _ := f.listings.GetAdoptionListing(ctx, l.ID)
	if got.Status != listings.StatusAvailable {
		t.Fatalf("listing must stay available, got %q", got.Status)
	}
}
