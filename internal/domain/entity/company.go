package entity

import "time"

// DefaultCompanyName nombre usado cuando no hay configuración guardada.
const DefaultCompanyName = "JD Soluciones"

// CompanyConfig datos de la empresa que se imprimen en recibos y correos.
// Existe a lo sumo una fila; toda lectura toma "la primera o los valores por defecto".
type CompanyConfig struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Address   string
	City      string
	NIT       string // NIT colombiano (con o sin dígito de verificación)
	LogoPath  string // ruta pública, ej. "/uploads/logo_empresa.png"
	UpdatedAt time.Time
}

// DefaultCompanyConfig configuración vacía con el nombre por defecto.
func DefaultCompanyConfig() *CompanyConfig {
	return &CompanyConfig{Name: DefaultCompanyName}
}
