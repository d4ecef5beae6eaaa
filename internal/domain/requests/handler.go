package requests

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-adoption-shelter/internal/domain/errs"
	"pet-adoption-shelter/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Solicitud sobre un listing (cualquier usuario autenticado)
	r.Post("/listings/{listingID}/requests", submitRequestHandler(svc))
	r.Get("/listings/{listingID}/requests", listByListingHandler(svc))

	r.Route("/requests", func(rr chi.Router) {
		rr.Get("/{requestID}", getRequestHandler(svc))

		// Solo employees
		rr.Post("/{requestID}/approve", processHandler(svc, ActionApprove))
		rr.Post("/{requestID}/reject", processHandler(svc, ActionReject))
	})
}

type RequestResponse struct {
	ID                string     `json:"id"`
	AdoptionListingID string     `json:"adoption_listing_id"`
	Status            Status     `json:"status"`
	SubmittedBy       string     `json:"submitted_by"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// submitRequestHandler godoc
// @Summary Solicitar adopción
// @Description Crea una solicitud pending y deja el listing on hold.
// @Tags requests
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param listingID path string true "ID del listing"
// @Success 201 {object} RequestResponse
// @Failure 400 {string} string "el listing no está available"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "listing not found"
// @Router /listings/{listingID}/requests [post]
func submitRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.RequireCaller(w, r)
		if !ok {
			return
		}

		req, err := svc.SubmitAdoptionRequest(r.Context(), caller, chi.URLParam(r, "listingID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ToRequestResponse(req))
	}
}

func listByListingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByListing(r.Context(), chi.URLParam(r, "listingID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToRequestResponses(items))
	}
}

// getRequestHandler godoc
// @Summary Obtener solicitud
// @Tags requests
// @Produce json
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} RequestResponse
// @Failure 404 {string} string "not found"
// @Router /requests/{requestID} [get]
func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := svc.GetAdoptionRequest(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToRequestResponse(req))
	}
}

// processHandler godoc
// @Summary Aprobar o rechazar solicitud
// @Description Solo employees. Aprobar deja el listing adopted; rechazar lo vuelve a available.
// @Tags requests
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} RequestResponse
// @Failure 400 {string} string "la solicitud no está pending"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "only employees can approve/reject adoption requests"
// @Failure 404 {string} string "not found"
// @Router /requests/{requestID}/approve [post]
// @Router /requests/{requestID}/reject [post]
func processHandler(svc *Service, action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.RequireCaller(w, r)
		if !ok {
			return
		}

		id := chi.URLParam(r, "requestID")

		var (
			req Request
			err error
		)
		switch action {
		case ActionApprove:
			req, err = svc.ApproveAdoptionRequest(r.Context(), caller, id)
		default:
			req, err = svc.RejectAdoptionRequest(r.Context(), caller, id)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToRequestResponse(req))
	}
}

// ToRequestResponses mapea a la representación JSON pública (HTTP y CLI --json).
func ToRequestResponses(items []Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(items))
	for _, req := range items {
		out = append(out, ToRequestResponse(req))
	}
	return out
}

func ToRequestResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:                req.ID,
		AdoptionListingID: req.AdoptionListingID,
		Status:            req.Status,
		SubmittedBy:       req.SubmittedBy.String(),
		SubmittedAt:       req.SubmittedAt,
		UpdatedAt:         req.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
