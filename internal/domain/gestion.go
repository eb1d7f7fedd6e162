package domain

import "time"

type Canal string

const (
	CanalCall     Canal = "CALL"
	CanalVoicebot Canal = "VOICEBOT"
)

// TipoContacto is the canonical contact outcome bucket after homologation.
type TipoContacto string

const (
	ContactoEfectivo   TipoContacto = "CONTACTO_EFECTIVO"
	ContactoNoEfectivo TipoContacto = "CONTACTO_NO_EFECTIVO"
	NoContacto         TipoContacto = "NO_CONTACTO"
	ContactoSinMapear  TipoContacto = "UNMAPPED"
)

// PrioridadContacto orders outcome buckets for payment attribution; a lower
// value outranks a higher one. Unmapped outcomes rank last.
func PrioridadContacto(t TipoContacto) int {
	switch t {
	case ContactoEfectivo:
		return 0
	case ContactoNoEfectivo:
		return 1
	case NoContacto:
		return 2
	default:
		return 3
	}
}

// GestionCruda is a channel-specific management row as it comes out of the
// warehouse, before homologation and vigencia filtering. Archivo is the
// optional explicit campaign claim; most sources leave it empty and the
// campaign is inferred from the membership map.
type GestionCruda struct {
	Canal           Canal
	CodDocumento    string
	Archivo         string
	Fecha           time.Time
	NombreAgente    string
	CorreoAgente    *string
	Tipificacion    string
	SubTipificacion string
	Duracion        int
	MontoCompromiso *float64
	FechaCompromiso *time.Time
	Compromiso      string
}

// Gestion is a normalized management event that passed the vigencia filter.
// Campanias holds every campaign the event is valid against; accounts assigned
// to overlapping campaigns legitimately produce more than one entry.
type Gestion struct {
	Seq             int
	CodLuna         int64
	CodDocumento    string
	Campanias       []string
	Canal           Canal
	Fecha           time.Time
	Ejecutivo       string
	EjecutivoDNI    string
	TipoContacto    TipoContacto
	Tipificacion    string
	SubTipificacion string
	Duracion        int
	MontoCompromiso float64
	Peso            float64
}

// Agente is one entry of the agent directory, keyed by corporate email.
type Agente struct {
	Correo string
	Nombre string
	DNI    string
}
