package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1"`
	Role     string `json:"rol" validate:"omitempty,oneof=admin tecnico consulta"`
}

// UpdateUserRequest campos opcionales: renombrar, cambiar password, cambiar rol.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=1"`
	Role     *string `json:"rol" validate:"omitempty,oneof=admin tecnico consulta"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"rol"`
	CreatedAt time.Time `json:"fecha_creacion"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"rol"`
}

// MeResponse identidad resuelta del token.
type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"rol"`
}
