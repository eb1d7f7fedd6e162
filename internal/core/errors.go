package core

import "fmt"

// MalformedCalendarError aborts the run: the control calendar defines a
// campaign whose window cannot be interpreted.
type MalformedCalendarError struct {
	Archivo string
	Motivo  string
}

func (e *MalformedCalendarError) Error() string {
	return fmt.Sprintf("calendario malformado: campaña %q: %s", e.Archivo, e.Motivo)
}

// DataIntegrityError aborts the run: too many assignment rows reference
// campaigns absent from the calendar.
type DataIntegrityError struct {
	Huerfanas int
	Total     int
	Umbral    float64
}

func (e *DataIntegrityError) Error() string {
	rate := 0.0
	if e.Total > 0 {
		rate = float64(e.Huerfanas) / float64(e.Total)
	}
	return fmt.Sprintf("integridad de datos: %d de %d asignaciones huérfanas (%.2f%% > umbral %.2f%%)",
		e.Huerfanas, e.Total, rate*100, e.Umbral*100)
}

// InvariantViolationError aborts the run: an event outside its campaign window
// reached a consumer of the filtered stream. The vigencia filter is the only
// authority on window containment, so this signals a defect, not bad data.
type InvariantViolationError struct {
	Archivo string
	Seq     int
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("violación de invariante: gestión seq=%d fuera de la vigencia de %q tras el filtrado", e.Seq, e.Archivo)
}
