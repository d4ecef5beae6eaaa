// Package errs define la taxonomía de errores del dominio de adopciones:
// BadRequest, NotFound y Forbidden. Cada error de negocio envuelve uno de
// estos sentinels con un mensaje legible.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// Error lleva el tipo (uno de los sentinels) y el mensaje para el cliente.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func BadRequest(format string, args ...any) error {
	return &Error{Kind: ErrBadRequest, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Msg: fmt.Sprintf(format, args...)}
}

// KindName devuelve "BadRequest", "NotFound", "Forbidden" o "" si no es de dominio.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrBadRequest):
		return "BadRequest"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrForbidden):
		return "Forbidden"
	default:
		return ""
	}
}

// HTTPStatus mapea el error al status HTTP. Errores fuera de la taxonomía => 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
