package core

import (
	"faco-weekly/internal/domain"
)

// Registry maps campaign identity (archivo) to its calendar row. It is built
// once per run and read-only afterwards.
type Registry map[string]domain.Campania

// LoadCalendar validates the control calendar rows and builds the registry.
// A window whose close precedes its assignment date, or a duplicated archivo,
// makes the whole calendar unusable.
func LoadCalendar(filas []domain.Campania) (Registry, error) {
	reg := make(Registry, len(filas))
	for _, c := range filas {
		if c.Archivo == "" {
			return nil, &MalformedCalendarError{Archivo: c.Archivo, Motivo: "archivo vacío"}
		}
		if c.FechaCierre.Before(c.FechaAsignacion) {
			return nil, &MalformedCalendarError{
				Archivo: c.Archivo,
				Motivo: "fecha_cierre " + c.FechaCierre.Format("2006-01-02") +
					" anterior a fecha_asignacion " + c.FechaAsignacion.Format("2006-01-02"),
			}
		}
		if _, dup := reg[c.Archivo]; dup {
			return nil, &MalformedCalendarError{Archivo: c.Archivo, Motivo: "archivo duplicado en calendario"}
		}
		if c.TipoCartera == "" {
			c.TipoCartera = domain.CarteraDeArchivo(c.Archivo)
		}
		reg[c.Archivo] = c
	}
	return reg, nil
}

// Archivos returns the campaign identities in the registry.
func (r Registry) Archivos() []string {
	out := make([]string, 0, len(r))
	for a := range r {
		out = append(out, a)
	}
	return out
}
