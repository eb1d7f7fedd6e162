package domain

import "time"

// Pago is one payment row from the warehouse. CodLuna is resolved through the
// documento→luna map of the manageable universe; it stays nil for payments on
// documents outside the universe.
type Pago struct {
	CodSistema     string
	NroDocumento   string
	MontoCancelado float64
	FechaPago      time.Time
	Archivo        string

	CodLuna *int64
}
