package listings

import (
	"strings"

	"pet-adoption-shelter/internal/domain/errs"
	"pet-adoption-shelter/internal/ports/auth"
)

// CreateInput es el payload para publicar un animal.
type CreateInput struct {
	Name        string
	Species     string
	Breed       string
	Gender      string
	Age         uint8
	Description string
}

// ValidatePayload corre los chequeos en orden fijo y devuelve el primero que falla.
// shelterSize es la cantidad actual de listings no adoptados.
func ValidatePayload(in CreateInput, shelterSize int, capacity uint16) error {
	if strings.TrimSpace(in.Species) == "" {
		return errs.BadRequest("species is missing")
	}
	if strings.TrimSpace(in.Breed) == "" {
		return errs.BadRequest("breed is missing")
	}
	if strings.TrimSpace(in.Gender) == "" {
		return errs.BadRequest("gender is missing")
	}
	if in.Age == 0 {
		return errs.BadRequest("age is missing")
	}
	if !Gender(strings.TrimSpace(in.Gender)).Valid() {
		return errs.BadRequest("invalid gender")
	}
	// Check if there is enough space available in the shelter
	if shelterSize+1 > int(capacity) {
		return errs.BadRequest("no more space in the shelter")
	}
	return nil
}

// ValidateID: el id vacío es un BadRequest, no un NotFound.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.BadRequest("adoption listing ID is missing")
	}
	return nil
}

func notFound(id string) error {
	return errs.NotFound("adoption listing with id %q not found", id)
}

// ValidateRevocation: existe, lo revoca quien lo publicó, está available
// y ninguna solicitud lo referencia.
func ValidateRevocation(id string, l Listing, found bool, caller auth.Principal, referenced bool) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if !found {
		return notFound(id)
	}
	if l.ListedBy != caller {
		return errs.Forbidden("only submitter can revoke adoption listing")
	}
	if l.Status != StatusAvailable {
		return errs.BadRequest("adoption listing with status %q cannot be revoked", l.Status)
	}
	if referenced {
		return errs.BadRequest("adoption listing %q has adoption requests and cannot be revoked", id)
	}
	return nil
}

// ValidateSubmission: el listing existe y está available.
func ValidateSubmission(id string, l Listing, found bool) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if !found {
		return notFound(id)
	}
	if l.Status != StatusAvailable {
		return errs.BadRequest("adoption request for adoption listings with status %q cannot be submitted", l.Status)
	}
	return nil
}
