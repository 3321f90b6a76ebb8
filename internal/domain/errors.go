package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Autenticación: se evalúan siempre antes de cualquier regla de rol.
	ErrMissingToken       = errors.New("token requerido")
	ErrExpiredToken       = errors.New("token expirado")
	ErrInvalidToken       = errors.New("token inválido")
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")

	// ErrProtectedAccount la cuenta "admin" no se elimina ni pierde su rol. Es también ErrForbidden.
	ErrProtectedAccount error = protectedAccountError{}
)

type protectedAccountError struct{}

func (protectedAccountError) Error() string        { return "la cuenta admin está protegida" }
func (protectedAccountError) Is(target error) bool { return target == ErrForbidden }

// IsAuthError indica si err pertenece a la familia 401.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrInvalidCredentials)
}
