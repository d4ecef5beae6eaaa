package listings

import (
	"pet-adoption-shelter/internal/ports/storage"
)

const bucketListings = "adoption_listings"

// Repository es la vista tipada del bucket de listings dentro de una tx.
type Repository struct {
	m storage.Map[Listing]
}

func NewRepository(tx storage.Tx) Repository {
	return Repository{m: storage.NewMap[Listing](tx, bucketListings)}
}

func (r Repository) Get(id string) (Listing, bool, error) {
	return r.m.Get(id)
}

func (r Repository) Insert(l Listing) error {
	return r.m.Insert(l.ID, l)
}

func (r Repository) Remove(id string) error {
	return r.m.Remove(id)
}

func (r Repository) Contains(id string) (bool, error) {
	return r.m.ContainsKey(id)
}

// All devuelve los listings en orden de key (el del store).
func (r Repository) All() ([]Listing, error) {
	return r.m.Values()
}

// ShelterSize cuenta los listings que ocupan lugar (no adoptados).
func (r Repository) ShelterSize() (int, error) {
	items, err := r.All()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, l := range items {
		if l.Status.OccupiesShelter() {
			n++
		}
	}
	return n, nil
}
