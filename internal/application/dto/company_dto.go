package dto

import "time"

// UpdateCompanyRequest entrada para actualizar la configuración (campos opcionales).
type UpdateCompanyRequest struct {
	Name    *string `json:"nombre_empresa" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"telefono"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"direccion"`
	City    *string `json:"ciudad"`
	NIT     *string `json:"nit" validate:"omitempty,max=20"`
}

// CompanyResponse configuración de la empresa.
type CompanyResponse struct {
	Name      string     `json:"nombre_empresa"`
	Phone     string     `json:"telefono"`
	Email     string     `json:"email"`
	Address   string     `json:"direccion"`
	City      string     `json:"ciudad"`
	NIT       string     `json:"nit"`
	LogoPath  string     `json:"logo_path"`
	UpdatedAt *time.Time `json:"fecha_actualizacion,omitempty"`
}

// StatusesResponse vocabulario sugerido de estados.
type StatusesResponse struct {
	Statuses []string `json:"estados"`
	Initial  string   `json:"estado_inicial"`
}
