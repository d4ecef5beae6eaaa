package listings

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"pet-adoption-shelter/internal/domain/errs"
	"pet-adoption-shelter/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas planas: el paquete requests cuelga
// /listings/{listingID}/requests del mismo router.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/listings", createListingHandler(svc))
	r.Get("/listings/available", listAvailableHandler(svc))
	r.Get("/listings/{listingID}", getListingHandler(svc))

	// Solo quien lo publicó
	r.Post("/listings/{listingID}/revoke", revokeListingHandler(svc))
}

type createListingRequest struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	Gender  string `json:"gender"`
	// rango 0..255 se valida en el handler
	Age         *int   `json:"age"`
	Description string `json:"description"`
}

type AnimalResponse struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Gender      Gender `json:"gender"`
	Age         uint8  `json:"age"`
	Description string `json:"description"`
}

type ListingResponse struct {
	ID        string         `json:"id"`
	Animal    AnimalResponse `json:"animal"`
	Status    Status         `json:"status"`
	ListedBy  string         `json:"listed_by"`
	ListedAt  time.Time      `json:"listed_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

// createListingHandler godoc
// @Summary Publicar animal para adopción
// @Description Crea un listing en estado available. Falla si el refugio está lleno.
// @Tags listings
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createListingRequest true "Datos del animal"
// @Success 201 {object} ListingResponse
// @Failure 400 {string} string "species/breed/gender/age faltante, gender inválido, sin lugar"
// @Failure 401 {string} string "unauthorized"
// @Router /listings [post]
func createListingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.RequireCaller(w, r)
		if !ok {
			return
		}

		var req createListingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var age uint8
		if req.Age != nil {
			if *req.Age < 0 || *req.Age > math.MaxUint8 {
				http.Error(w, "age must be between 0 and 255", http.StatusBadRequest)
				return
			}
			age = uint8(*req.Age)
		}

		l, err := svc.ListForAdoption(r.Context(), caller, CreateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Gender:      req.Gender,
			Age:         age,
			Description: req.Description,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToListingResponse(l))
	}
}

// listAvailableHandler godoc
// @Summary Listings disponibles
// @Tags listings
// @Produce json
// @Success 200 {array} ListingResponse
// @Router /listings/available [get]
func listAvailableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetAvailableForAdoption(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToListingResponses(items))
	}
}

// getListingHandler godoc
// @Summary Obtener listing
// @Tags listings
// @Produce json
// @Param listingID path string true "ID del listing"
// @Success 200 {object} ListingResponse
// @Failure 404 {string} string "not found"
// @Router /listings/{listingID} [get]
func getListingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.GetAdoptionListing(r.Context(), chi.URLParam(r, "listingID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToListingResponse(l))
	}
}

// revokeListingHandler godoc
// @Summary Revocar listing
// @Description Borra un listing available que no tenga solicitudes. Solo quien lo publicó.
// @Tags listings
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param listingID path string true "ID del listing"
// @Success 200 {object} ListingResponse
// @Failure 400 {string} string "status distinto de available o con solicitudes"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "only submitter can revoke adoption listing"
// @Failure 404 {string} string "not found"
// @Router /listings/{listingID}/revoke [post]
func revokeListingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.RequireCaller(w, r)
		if !ok {
			return
		}

		l, err := svc.RevokeAdoptionListing(r.Context(), chi.URLParam(r, "listingID"), caller)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToListingResponse(l))
	}
}

// ToListingResponses mapea a la representación JSON pública (HTTP y CLI --json).
func ToListingResponses(items []Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(items))
	for _, l := range items {
		out = append(out, ToListingResponse(l))
	}
	return out
}

func ToListingResponse(l Listing) ListingResponse {
	return ListingResponse{
		ID: l.ID,
		Animal: AnimalResponse{
			Name:        l.Animal.Name,
			Species:     l.Animal.Species,
			Breed:       l.Animal.Breed,
			Gender:      l.Animal.Gender,
			Age:         l.Animal.Age,
			Description: l.Animal.Description,
		},
		Status:    l.Status,
		ListedBy:  l.ListedBy.String(),
		ListedAt:  l.ListedAt,
		UpdatedAt: l.UpdatedAt,
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
