package domain

import "time"

// Deuda is the latest exigible-debt snapshot for one document as of the
// assignment cutoff date.
type Deuda struct {
	CodCuenta        string
	NroDocumento     string
	FechaVencimiento *time.Time
	MontoExigible    float64
	Archivo          string
	FechaCarga       time.Time
}
