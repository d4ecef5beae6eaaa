package requests

import (
	"time"

	"pet-adoption-shelter/internal/ports/auth"
)

// Status de una solicitud de adopción.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request es la solicitud de un usuario para adoptar un listing.
// Solo sale de pending una vez (approved o rejected).
type Request struct {
	ID                string
	AdoptionListingID string
	Status            Status

	SubmittedBy auth.Principal
	SubmittedAt time.Time
	UpdatedAt   *time.Time
}

// Action es la decisión de un employee sobre una solicitud pendiente.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func (a Action) target() Status {
	if a == ActionApprove {
		return StatusApproved
	}
	return StatusRejected
}
