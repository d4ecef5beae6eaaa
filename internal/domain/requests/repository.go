package requests

import (
	"pet-adoption-shelter/internal/ports/storage"
)

const bucketRequests = "adoption_requests"

type Repository struct {
	m storage.Map[Request]
}

func NewRepository(tx storage.Tx) Repository {
	return Repository{m: storage.NewMap[Request](tx, bucketRequests)}
}

func (r Repository) Get(id string) (Request, bool, error) {
	return r.m.Get(id)
}

func (r Repository) Insert(req Request) error {
	return r.m.Insert(req.ID, req)
}

func (r Repository) Contains(id string) (bool, error) {
	return r.m.ContainsKey(id)
}

// ByListing filtra por listing en orden de key.
func (r Repository) ByListing(listingID string) ([]Request, error) {
	items, err := r.m.Values()
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0)
	for _, req := range items {
		if req.AdoptionListingID == listingID {
			out = append(out, req)
		}
	}
	return out, nil
}
