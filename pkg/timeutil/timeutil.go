// Package timeutil concentra la hora local del negocio (Colombia, UTC-5 fija).
//
// Todas las marcas de tiempo persistidas (created_at, updated_at) y los sellos de
// los nombres de archivo se calculan con Now, a partir de un clock.Clock inyectado.
package timeutil

import (
	"time"

	"github.com/juju/clock"
)

// Zone zona horaria fija del negocio. Colombia no usa horario de verano.
var Zone = time.FixedZone("COT", -5*60*60)

const (
	// DateLayout formato de fecha en recibos y exportaciones.
	DateLayout = "02/01/2006"
	// DateTimeLayout formato de fecha y hora en recibos y exportaciones.
	DateTimeLayout = "02/01/2006 15:04"
	// StampLayout sello para nombres de archivo generados.
	StampLayout = "20060102150405"
)

// Now devuelve la hora actual del reloj en la zona del negocio.
// Si clk es nil se usa el reloj de pared.
func Now(clk clock.Clock) time.Time {
	if clk == nil {
		clk = clock.WallClock
	}
	return In(clk.Now())
}

// In convierte t a la zona del negocio (para valores leídos de la BD).
func In(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Zone)
}

// Stamp sello compacto YYYYMMDDHHMMSS en hora local.
func Stamp(t time.Time) string {
	return In(t).Format(StampLayout)
}
