package core

import (
	"math"
	"sort"

	"faco-weekly/internal/domain"
)

// Resumen are the headline numbers of one weekly run.
type Resumen struct {
	TotalAsignados      int     `json:"total_asignados"`
	TotalCuentas        int     `json:"total_cuentas"`
	UniversoGestionable int     `json:"universo_gestionable"`
	TotalGestiones      int     `json:"total_gestiones"`
	ClientesGestionados int     `json:"clientes_gestionados"`
	TotalPagos          int     `json:"total_pagos"`
	MontoTotalPagos     float64 `json:"monto_total_pagos"`
	TasaContactabilidad float64 `json:"tasa_contactabilidad"`
	TasaAtribucion      float64 `json:"tasa_atribucion"`
	IntensidadGestion   float64 `json:"intensidad_gestion"`
	TicketPromedioPago  float64 `json:"ticket_promedio_pago"`
	PagosSinGestion     int     `json:"pagos_sin_gestion"`
	LunasMultiCartera   int     `json:"lunas_multicartera"`
}

// CalcularResumen derives the run KPIs from the processed streams.
func CalcularResumen(
	asignaciones []domain.Asignacion,
	res *Resolution,
	stream []domain.Gestion,
	pagos []domain.Pago,
	atribuciones []domain.Atribucion,
) Resumen {
	cuentas := make(map[string]bool)
	lunas := make(map[int64]bool)
	for _, a := range asignaciones {
		cuentas[a.Cuenta] = true
		lunas[a.CodLuna] = true
	}

	gestionados := make(map[int64]bool)
	efectivos := 0
	for _, g := range stream {
		gestionados[g.CodLuna] = true
		if g.TipoContacto == domain.ContactoEfectivo {
			efectivos++
		}
	}

	montoPagos := 0.0
	for _, p := range pagos {
		montoPagos += p.MontoCancelado
	}

	atribuidos := 0
	sinGestion := 0
	for _, a := range atribuciones {
		if a.Motivo == domain.MotivoAtribuido {
			atribuidos++
		} else {
			sinGestion++
		}
	}

	r := Resumen{
		TotalAsignados:      len(lunas),
		TotalCuentas:        len(cuentas),
		UniversoGestionable: len(res.Universe),
		TotalGestiones:      len(stream),
		ClientesGestionados: len(gestionados),
		TotalPagos:          len(pagos),
		MontoTotalPagos:     montoPagos,
		PagosSinGestion:     sinGestion,
		LunasMultiCartera:   len(res.MultiMembership),
	}
	if len(stream) > 0 {
		r.TasaContactabilidad = redondear2(float64(efectivos) / float64(len(stream)) * 100)
	}
	if len(pagos) > 0 {
		r.TasaAtribucion = redondear2(float64(atribuidos) / float64(len(pagos)) * 100)
		r.TicketPromedioPago = redondear2(montoPagos / float64(len(pagos)))
	}
	if len(gestionados) > 0 {
		r.IntensidadGestion = redondear2(float64(len(stream)) / float64(len(gestionados)))
	}
	return r
}

// AgenteRanking is one row of the agent performance ranking.
type AgenteRanking struct {
	Ejecutivo           string  `json:"ejecutivo"`
	TotalGestiones      int     `json:"total_gestiones"`
	ContactosEfectivos  int     `json:"contactos_efectivos"`
	NoContactos         int     `json:"no_contactos"`
	DuracionTotal       int     `json:"duracion_total"`
	MontoComprometido   float64 `json:"monto_comprometido"`
	TasaContactabilidad float64 `json:"tasa_contactabilidad"`
	MontoAtribuido      float64 `json:"monto_pagado_atribuido"`
	ClientesPagaron     int     `json:"clientes_pagaron"`
}

// RankingAgentes builds the top-N human agent ranking ordered by attributed
// amount, contactability and volume. The voicebot is excluded: its volume is
// not comparable with a human agent's.
func RankingAgentes(stream []domain.Gestion, atribuciones []domain.Atribucion, topN int) []AgenteRanking {
	porAgente := make(map[string]*AgenteRanking)
	for _, g := range stream {
		if g.Ejecutivo == EjecutivoVoicebot {
			continue
		}
		ar := porAgente[g.Ejecutivo]
		if ar == nil {
			ar = &AgenteRanking{Ejecutivo: g.Ejecutivo}
			porAgente[g.Ejecutivo] = ar
		}
		ar.TotalGestiones++
		ar.DuracionTotal += g.Duracion
		ar.MontoComprometido += g.MontoCompromiso
		switch g.TipoContacto {
		case domain.ContactoEfectivo:
			ar.ContactosEfectivos++
		case domain.NoContacto:
			ar.NoContactos++
		}
	}

	pagadores := make(map[string]map[int64]bool)
	for _, a := range atribuciones {
		if a.Motivo != domain.MotivoAtribuido || a.Ejecutivo == nil {
			continue
		}
		ar := porAgente[*a.Ejecutivo]
		if ar == nil {
			continue
		}
		ar.MontoAtribuido += a.MontoPagado
		if pagadores[*a.Ejecutivo] == nil {
			pagadores[*a.Ejecutivo] = make(map[int64]bool)
		}
		pagadores[*a.Ejecutivo][a.CodLuna] = true
	}

	out := make([]AgenteRanking, 0, len(porAgente))
	for nombre, ar := range porAgente {
		if ar.TotalGestiones > 0 {
			ar.TasaContactabilidad = redondear2(float64(ar.ContactosEfectivos) / float64(ar.TotalGestiones) * 100)
		}
		ar.ClientesPagaron = len(pagadores[nombre])
		out = append(out, *ar)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].MontoAtribuido != out[j].MontoAtribuido {
			return out[i].MontoAtribuido > out[j].MontoAtribuido
		}
		if out[i].TasaContactabilidad != out[j].TasaContactabilidad {
			return out[i].TasaContactabilidad > out[j].TasaContactabilidad
		}
		if out[i].TotalGestiones != out[j].TotalGestiones {
			return out[i].TotalGestiones > out[j].TotalGestiones
		}
		return out[i].Ejecutivo < out[j].Ejecutivo
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func redondear2(v float64) float64 {
	return math.Round(v*100) / 100
}
