package shelter

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"pet-adoption-shelter/internal/domain/errs"
	"pet-adoption-shelter/internal/middleware"
	"pet-adoption-shelter/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// OccupancyLookup evita importar el paquete listings (rompe ciclos).
type OccupancyLookup interface {
	CurrentShelterSize(ctx context.Context) (int, error)
}

func RegisterRoutes(r chi.Router, svc *Service, occupancy OccupancyLookup) {
	// Roster (owner)
	r.Route("/employees", func(er chi.Router) {
		er.Post("/", addEmployeeHandler(svc))
		er.Get("/", listEmployeesHandler(svc))
	})

	r.Route("/shelter/capacity", func(cr chi.Router) {
		cr.Get("/", getCapacityHandler(svc, occupancy))
		cr.Put("/", setCapacityHandler(svc, occupancy))
	})
}

type addEmployeeRequest struct {
	Principal string `json:"principal"`
}

type EmployeeResponse struct {
	Principal string    `json:"principal"`
	AddedBy   string    `json:"added_by"`
	AddedAt   time.Time `json:"added_at"`
}

type setCapacityRequest struct {
	// Puntero: distingue "no enviado" de 0.
	Capacity *int64 `json:"capacity"`
}

type CapacityResponse struct {
	Capacity uint16 `json:"capacity"`
	Occupied int    `json:"occupied"`
}

// addEmployeeHandler godoc
// @Summary Agregar employee
// @Description Solo el owner del refugio puede agregar employees. El principal no puede ser anónimo ni estar repetido.
// @Tags shelter
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body addEmployeeRequest true "Principal del nuevo employee"
// @Success 201 {object} EmployeeResponse
// @Failure 400 {string} string "invalid json / employee anónimo / ya es employee"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "only an owner can add an employee"
// @Router /employees [post]
func addEmployeeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.RequireCaller(w, r)
		if !ok {
			return
		}

		var req addEmployeeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.AddEmployee(r.Context(), caller, auth.ParsePrincipal(req.Principal))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToEmployeeResponse(e))
	}
}

func listEmployeesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.RequireCaller(w, r)
		if !ok {
			return
		}

		items, err := svc.ListEmployees(r.Context(), caller)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToEmployeeResponses(items))
	}
}

// getCapacityHandler godoc
// @Summary Capacidad del refugio
// @Description Devuelve la capacidad configurada y cuántos listings ocupan lugar (todo lo que no está adoptado).
// @Tags shelter
// @Produce json
// @Success 200 {object} CapacityResponse
// @Router /shelter/capacity [get]
func getCapacityHandler(svc *Service, occupancy OccupancyLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capacity, err := svc.GetShelterCapacity(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		occupied, err := currentOccupancy(r.Context(), occupancy)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CapacityResponse{Capacity: capacity, Occupied: occupied})
	}
}

// setCapacityHandler godoc
// @Summary Cambiar capacidad del refugio
// @Description Solo el owner. La capacidad es un entero sin signo de 16 bits.
// @Tags shelter
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body setCapacityRequest true "Nueva capacidad"
// @Success 200 {object} CapacityResponse
// @Failure 400 {string} string "capacidad negativa o fuera de rango"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "only an owner can set shelter capacity"
// @Router /shelter/capacity [put]
func setCapacityHandler(svc *Service, occupancy OccupancyLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.RequireCaller(w, r)
		if !ok {
			return
		}

		var req setCapacityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		capacity, err := parseCapacity(req.Capacity)
		if err != nil {
			writeError(w, err)
			return
		}

		if err := svc.SetShelterCapacity(r.Context(), caller, capacity); err != nil {
			writeError(w, err)
			return
		}

		occupied, err := currentOccupancy(r.Context(), occupancy)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, CapacityResponse{Capacity: capacity, Occupied: occupied})
	}
}

// ParseCapacity valida el rango uint16 (compartido con la CLI).
func ParseCapacity(v int64) (uint16, error) {
	return parseCapacity(&v)
}

func parseCapacity(v *int64) (uint16, error) {
	if v == nil {
		return 0, errs.BadRequest("shelter capacity is missing")
	}
	if *v < 0 {
		return 0, errs.BadRequest("shelter capacity cannot be negative")
	}
	if *v > math.MaxUint16 {
		return 0, errs.BadRequest("shelter capacity cannot exceed %d", math.MaxUint16)
	}
	return uint16(*v), nil
}

func currentOccupancy(ctx context.Context, occupancy OccupancyLookup) (int, error) {
	if occupancy == nil {
		return 0, nil
	}
	return occupancy.CurrentShelterSize(ctx)
}

// ToEmployeeResponses mapea a la representación JSON pública (HTTP y CLI --json).
func ToEmployeeResponses(items []Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(items))
	for _, e := range items {
		out = append(out, ToEmployeeResponse(e))
	}
	return out
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		Principal: e.Principal.String(),
		AddedBy:   e.AddedBy.String(),
		AddedAt:   e.AddedAt,
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
