package requests

import (
	"strings"

	"pet-adoption-shelter/internal/domain/errs"
)

func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.BadRequest("adoption request ID is missing")
	}
	return nil
}

func notFound(id string) error {
	return errs.NotFound("adoption request with id %q not found", id)
}

// ValidateProcessing: employee, existe y sigue pending. El id vacío cae en NotFound.
func ValidateProcessing(isEmployee bool, id string, req Request, found bool, action Action) error {
	if !isEmployee {
		return errs.Forbidden("only employees can %s adoption requests", action)
	}
	if !found {
		return notFound(id)
	}
	if req.Status != StatusPending {
		return errs.BadRequest("adoption request with status %q cannot be %s", req.Status, action.target())
	}
	return nil
}
