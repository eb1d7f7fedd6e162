package core

import (
	"sort"

	"faco-weekly/internal/domain"
)

// CampaniaReport is the per-campaign validation summary of one run.
// FueraDeVigencia counts events that reached the analyzer despite falling
// outside the window; the merger guarantees it is zero, and a nonzero count is
// a filter bypass, reported as a fatal error rather than a report entry.
type CampaniaReport struct {
	Archivo          string  `json:"archivo"`
	TipoCartera      string  `json:"tipo_cartera"`
	Validas          int     `json:"gestiones_validas"`
	FueraDeVigencia  int     `json:"gestiones_fuera_de_vigencia"`
	LunasGestionadas int     `json:"lunas_gestionadas"`
	DiasConGestion   int     `json:"dias_con_gestion"`
	DiasVigencia     int     `json:"dias_vigencia"`
	CoberturaPct     float64 `json:"cobertura_pct"`
}

// AnalizarCobertura computes temporal coverage per campaign from the filtered
// stream: the share of days inside the vigencia with at least one valid
// gestion. An event valid against several campaigns counts towards each.
func AnalizarCobertura(stream []domain.Gestion, reg Registry) ([]CampaniaReport, error) {
	dias := make(map[string]map[string]bool, len(reg))
	validas := make(map[string]int, len(reg))
	lunas := make(map[string]map[int64]bool, len(reg))
	for archivo := range reg {
		dias[archivo] = make(map[string]bool)
		lunas[archivo] = make(map[int64]bool)
	}

	for _, g := range stream {
		for _, archivo := range g.Campanias {
			c, ok := reg[archivo]
			if !ok || !c.Contiene(g.Fecha) {
				return nil, &InvariantViolationError{Archivo: archivo, Seq: g.Seq}
			}
			validas[archivo]++
			dias[archivo][g.Fecha.Format("2006-01-02")] = true
			lunas[archivo][g.CodLuna] = true
		}
	}

	out := make([]CampaniaReport, 0, len(reg))
	for archivo, c := range reg {
		total := c.DiasVigencia()
		conGestion := len(dias[archivo])
		pct := 0.0
		if total > 0 {
			pct = float64(conGestion) / float64(total) * 100
		}
		out = append(out, CampaniaReport{
			Archivo:          archivo,
			TipoCartera:      c.TipoCartera,
			Validas:          validas[archivo],
			FueraDeVigencia:  0,
			LunasGestionadas: len(lunas[archivo]),
			DiasConGestion:   conGestion,
			DiasVigencia:     total,
			CoberturaPct:     pct,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Archivo < out[j].Archivo })
	return out, nil
}
