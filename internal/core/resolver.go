package core

import (
	"faco-weekly/internal/domain"
)

// Resolution is the outcome of reconciling raw assignments against the
// calendar: who belongs where, who is manageable, and who sits in more than
// one campaign at once.
type Resolution struct {
	// Membership maps cod_luna to the set of campaigns it is assigned to.
	Membership map[int64]map[string]bool

	// Universe holds the manageable cod_lunas: at least one assignment with
	// current exigible debt in a campaign known to the calendar.
	Universe map[int64]bool

	// MultiMembership holds cod_lunas assigned to two or more campaigns.
	MultiMembership map[int64]bool

	// DocumentoLuna maps nro_documento to cod_luna for the universe; gestiones
	// and pagos reference documents, not lunas.
	DocumentoLuna map[string]int64

	Huerfanas int
	Total     int
}

// ApplyDeuda marks each assignment whose cuenta still carries exigible debt
// and returns the documento→luna map derived from the matched debt rows.
// Assignments are updated in place.
func ApplyDeuda(asignaciones []domain.Asignacion, deudas []domain.Deuda) map[string]int64 {
	porCuenta := make(map[string][]domain.Deuda)
	for _, d := range deudas {
		porCuenta[d.CodCuenta] = append(porCuenta[d.CodCuenta], d)
	}

	docLuna := make(map[string]int64)
	for i := range asignaciones {
		filas, ok := porCuenta[asignaciones[i].Cuenta]
		if !ok {
			continue
		}
		total := 0.0
		for _, d := range filas {
			total += d.MontoExigible
			docLuna[d.NroDocumento] = asignaciones[i].CodLuna
		}
		asignaciones[i].DeudaVigente = true
		asignaciones[i].MontoExigible = total
	}
	return docLuna
}

// Resolve builds the membership map and manageable universe from assignment
// rows. Assignments pointing at campaigns missing from the registry are
// dropped and counted; the run only aborts when the orphan rate exceeds
// umbralHuerfanas (a fraction, e.g. 0.05).
func Resolve(asignaciones []domain.Asignacion, reg Registry, umbralHuerfanas float64) (*Resolution, error) {
	res := &Resolution{
		Membership:      make(map[int64]map[string]bool),
		Universe:        make(map[int64]bool),
		MultiMembership: make(map[int64]bool),
		DocumentoLuna:   make(map[string]int64),
		Total:           len(asignaciones),
	}

	for _, a := range asignaciones {
		if _, ok := reg[a.Archivo]; !ok {
			res.Huerfanas++
			continue
		}

		set := res.Membership[a.CodLuna]
		if set == nil {
			set = make(map[string]bool)
			res.Membership[a.CodLuna] = set
		}
		set[a.Archivo] = true
		if len(set) > 1 {
			res.MultiMembership[a.CodLuna] = true
		}

		if a.DeudaVigente {
			res.Universe[a.CodLuna] = true
		}
	}

	if res.Total > 0 && umbralHuerfanas > 0 {
		rate := float64(res.Huerfanas) / float64(res.Total)
		if rate > umbralHuerfanas {
			return nil, &DataIntegrityError{Huerfanas: res.Huerfanas, Total: res.Total, Umbral: umbralHuerfanas}
		}
	}
	return res, nil
}
