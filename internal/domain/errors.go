package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Error lleva el mensaje que se devuelve al cliente junto con su categoría.
// errors.Is(err, ErrConflict) funciona a través de Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError construye un error de dominio con mensaje visible para el cliente.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Invalid atajo para ErrInvalidInput.
func Invalid(message string) *Error { return NewError(ErrInvalidInput, message) }

// NotFound atajo para ErrNotFound.
func NotFound(message string) *Error { return NewError(ErrNotFound, message) }

// Conflict atajo para ErrConflict.
func Conflict(message string) *Error { return NewError(ErrConflict, message) }

// Unauthorized atajo para ErrUnauthorized.
func Unauthorized(message string) *Error { return NewError(ErrUnauthorized, message) }

// Forbidden atajo para ErrForbidden.
func Forbidden(message string) *Error { return NewError(ErrForbidden, message) }

// Message devuelve el mensaje de cliente si err es (o envuelve) un *Error; si no, fallback.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
