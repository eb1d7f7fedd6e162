package domain

import (
	"strings"
	"time"
)

// Campania is one row of the control calendar. The archivo name is the
// campaign identity; the window [FechaAsignacion, FechaCierre] is its vigencia.
type Campania struct {
	Archivo         string
	TipoCartera     string
	FechaAsignacion time.Time
	FechaCierre     time.Time
	SumaLineas      int64
	Vencimiento     int
}

// Contiene reports whether fecha falls inside the campaign window, both
// endpoints inclusive. Comparisons are date-based.
func (c Campania) Contiene(fecha time.Time) bool {
	d := TruncarFecha(fecha)
	return !d.Before(TruncarFecha(c.FechaAsignacion)) && !d.After(TruncarFecha(c.FechaCierre))
}

// DiasVigencia returns the inclusive number of days in the window.
func (c Campania) DiasVigencia() int {
	if TruncarFecha(c.FechaCierre).Before(TruncarFecha(c.FechaAsignacion)) {
		return 0
	}
	return DiasEntre(c.FechaAsignacion, c.FechaCierre) + 1
}

// TruncarFecha drops the time-of-day component.
func TruncarFecha(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DiasEntre counts the civil days from desde to hasta. Both dates are taken at
// UTC midnight so the count stays exact across DST transitions in the source
// zone.
func DiasEntre(desde, hasta time.Time) int {
	return int(fechaUTC(hasta).Sub(fechaUTC(desde)).Hours() / 24)
}

func fechaUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CarteraDeArchivo classifies a campaign file into its cartera by name pattern.
func CarteraDeArchivo(archivo string) string {
	switch {
	case strings.Contains(archivo, "_CF_ANN_"):
		return "Fraccionamiento"
	case strings.Contains(archivo, "_AN_"):
		return "Altas_Nuevas"
	case strings.Contains(archivo, "_Temprana_"):
		return "Temprana"
	default:
		return "Otro"
	}
}

// ServicioDeNegocio maps negocio to the reporting service line: only MOVIL is
// mobile, everything else is fixed.
func ServicioDeNegocio(negocio string) string {
	if strings.EqualFold(strings.TrimSpace(negocio), "MOVIL") {
		return "Movil"
	}
	return "Fijo"
}
