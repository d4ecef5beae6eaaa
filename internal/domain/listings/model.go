package listings

import (
	"time"

	"pet-adoption-shelter/internal/ports/auth"
)

// Gender define el sexo del animal.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Status es el estado de un listing.
// @Enum available, on hold, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusOnHold    Status = "on hold"
	StatusAdopted   Status = "adopted"
)

// CanTransitionTo: available -> on hold -> adopted, y on hold -> available.
// adopted es terminal; la revocación (borrado) no es una transición de status.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusAvailable:
		return next == StatusOnHold
	case StatusOnHold:
		return next == StatusAvailable || next == StatusAdopted
	default:
		return false
	}
}

// OccupiesShelter: todo lo que no fue adoptado ocupa lugar en el refugio.
func (s Status) OccupiesShelter() bool {
	return s != StatusAdopted
}

// Animal se embebe en el listing; no tiene identidad propia.
type Animal struct {
	Name        string
	Species     string
	Breed       string
	Gender      Gender
	Age         uint8
	Description string
}

// Listing es la oferta pública de un animal para adopción.
type Listing struct {
	ID     string
	Animal Animal
	Status Status

	ListedBy  auth.Principal
	ListedAt  time.Time
	UpdatedAt *time.Time
}
