package core

import (
	"sort"
	"sync"

	"faco-weekly/internal/domain"
)

// VentanaAtribucionDias is the default lookback window for payment
// attribution.
const VentanaAtribucionDias = 30

// MejorGestion is the total order used to pick the attributed gestion among
// candidates: outcome bucket first (effective contact beats everything), then
// the most recent date, then the highest weight, then the lowest Seq. Seq is
// assigned in merge order, so the last criterion makes the winner stable.
func MejorGestion(a, b domain.Gestion) bool {
	pa, pb := domain.PrioridadContacto(a.TipoContacto), domain.PrioridadContacto(b.TipoContacto)
	if pa != pb {
		return pa < pb
	}
	if !a.Fecha.Equal(b.Fecha) {
		return a.Fecha.After(b.Fecha)
	}
	if a.Peso != b.Peso {
		return a.Peso > b.Peso
	}
	return a.Seq < b.Seq
}

// AtribuirPagos links every payment to its best candidate gestion inside the
// lookback window. Payments are independent of each other, so the work is
// partitioned across workers; results land at the payment's own index, which
// keeps the output order (and therefore the whole run) deterministic.
func AtribuirPagos(pagos []domain.Pago, stream []domain.Gestion, ventanaDias, workers int) []domain.Atribucion {
	porLuna := make(map[int64][]domain.Gestion)
	for _, g := range stream {
		porLuna[g.CodLuna] = append(porLuna[g.CodLuna], g)
	}
	for _, gs := range porLuna {
		sort.Slice(gs, func(i, j int) bool { return gs[i].Fecha.Before(gs[j].Fecha) })
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(pagos) {
		workers = len(pagos)
	}

	out := make([]domain.Atribucion, len(pagos))
	if len(pagos) == 0 {
		return out
	}

	var wg sync.WaitGroup
	chunk := (len(pagos) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		desde := w * chunk
		hasta := desde + chunk
		if hasta > len(pagos) {
			hasta = len(pagos)
		}
		if desde >= hasta {
			break
		}
		wg.Add(1)
		go func(desde, hasta int) {
			defer wg.Done()
			for i := desde; i < hasta; i++ {
				out[i] = atribuirPago(pagos[i], porLuna, ventanaDias)
			}
		}(desde, hasta)
	}
	wg.Wait()
	return out
}

func atribuirPago(p domain.Pago, porLuna map[int64][]domain.Gestion, ventanaDias int) domain.Atribucion {
	atr := domain.Atribucion{
		NroDocumento: p.NroDocumento,
		FechaPago:    p.FechaPago,
		MontoPagado:  p.MontoCancelado,
		Motivo:       domain.MotivoSinGestion,
	}
	if p.CodLuna == nil {
		return atr
	}
	atr.CodLuna = *p.CodLuna

	fin := domain.TruncarFecha(p.FechaPago)
	inicio := fin.AddDate(0, 0, -ventanaDias)

	var (
		ganadora domain.Gestion
		hay      bool
	)
	for _, g := range porLuna[*p.CodLuna] {
		d := domain.TruncarFecha(g.Fecha)
		if d.Before(inicio) || d.After(fin) {
			continue
		}
		if !hay || MejorGestion(g, ganadora) {
			ganadora = g
			hay = true
		}
	}
	if !hay {
		return atr
	}

	dias := domain.DiasEntre(ganadora.Fecha, p.FechaPago)
	seq := ganadora.Seq
	ejecutivo := ganadora.Ejecutivo
	canal := ganadora.Canal
	fecha := ganadora.Fecha
	tipo := ganadora.TipoContacto

	atr.Motivo = domain.MotivoAtribuido
	atr.GestionSeq = &seq
	atr.Ejecutivo = &ejecutivo
	atr.Canal = &canal
	atr.FechaGestion = &fecha
	atr.TipoContacto = &tipo
	atr.DiasDesdeGestion = &dias

	return atr
}
