package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleTecnico  = "tecnico"
	RoleConsulta = "consulta"
)

// ProtectedUsername cuenta que siempre existe, no se elimina y no pierde el rol admin.
const ProtectedUsername = "admin"

// User representa una cuenta del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, tecnico, consulta
	CreatedAt    time.Time
}

// IsProtected indica si es la cuenta admin protegida.
func (u *User) IsProtected() bool {
	return u != nil && u.Username == ProtectedUsername
}

// ValidRole indica si role pertenece al vocabulario de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTecnico, RoleConsulta:
		return true
	}
	return false
}
