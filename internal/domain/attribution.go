package domain

import "time"

// Attribution result markers.
const (
	MotivoAtribuido  = "ATRIBUIDO"
	MotivoSinGestion = "SIN_GESTION"
)

// Atribucion links one payment to the management event most plausibly
// responsible for it. Exactly one Atribucion exists per payment; when no
// candidate gestion exists inside the lookback window, Motivo is SIN_GESTION
// and the gestion fields stay nil.
type Atribucion struct {
	NroDocumento string
	CodLuna      int64
	FechaPago    time.Time
	MontoPagado  float64

	Motivo string

	GestionSeq       *int
	Ejecutivo        *string
	Canal            *Canal
	FechaGestion     *time.Time
	TipoContacto     *TipoContacto
	DiasDesdeGestion *int
}
