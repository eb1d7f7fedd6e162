package core

import (
	"reflect"
	"testing"
	"time"

	"faco-weekly/internal/domain"
)

func pago(t *testing.T, doc, dia string, monto float64, codLuna int64) domain.Pago {
	t.Helper()
	p := domain.Pago{
		NroDocumento:   doc,
		FechaPago:      fecha(t, dia),
		MontoCancelado: monto,
	}
	if codLuna != 0 {
		p.CodLuna = &codLuna
	}
	return p
}

func conTipo(g domain.Gestion, tipo domain.TipoContacto) domain.Gestion {
	g.TipoContacto = tipo
	return g
}

func TestAtribuirPagosPrefersEffectiveContact(t *testing.T) {
	// an older effective contact beats a more recent failed attempt
	stream := []domain.Gestion{
		conTipo(gestion(t, 0, 1, "2025-06-03"), domain.ContactoEfectivo),
		conTipo(gestion(t, 1, 1, "2025-06-08"), domain.ContactoNoEfectivo),
	}
	pagos := []domain.Pago{pago(t, "D-1", "2025-06-10", 300, 1)}

	out := AtribuirPagos(pagos, stream, VentanaAtribucionDias, 1)
	if len(out) != 1 {
		t.Fatalf("exactly one result per payment, got %d", len(out))
	}
	a := out[0]
	if a.Motivo != domain.MotivoAtribuido {
		t.Fatalf("expected attributed payment, got %s", a.Motivo)
	}
	if *a.GestionSeq != 0 {
		t.Fatalf("effective contact should win over recency, got seq %d", *a.GestionSeq)
	}
	if *a.DiasDesdeGestion != 7 {
		t.Fatalf("expected 7 days since gestion, got %d", *a.DiasDesdeGestion)
	}
}

func TestAtribuirPagosRecencyWithinBucket(t *testing.T) {
	stream := []domain.Gestion{
		conTipo(gestion(t, 0, 1, "2025-06-03"), domain.ContactoNoEfectivo),
		conTipo(gestion(t, 1, 1, "2025-06-08"), domain.ContactoNoEfectivo),
	}
	pagos := []domain.Pago{pago(t, "D-1", "2025-06-10", 300, 1)}

	out := AtribuirPagos(pagos, stream, VentanaAtribucionDias, 1)
	if *out[0].GestionSeq != 1 {
		t.Fatalf("same bucket resolves by recency, got seq %d", *out[0].GestionSeq)
	}
}

func TestAtribuirPagosWeightAndSeqTieBreaks(t *testing.T) {
	liviana := conTipo(gestion(t, 0, 1, "2025-06-08"), domain.ContactoEfectivo)
	pesada := conTipo(gestion(t, 1, 1, "2025-06-08"), domain.ContactoEfectivo)
	pesada.Peso = 500

	out := AtribuirPagos([]domain.Pago{pago(t, "D-1", "2025-06-10", 300, 1)},
		[]domain.Gestion{liviana, pesada}, VentanaAtribucionDias, 1)
	if *out[0].GestionSeq != 1 {
		t.Fatalf("higher weight wins the date tie, got seq %d", *out[0].GestionSeq)
	}

	gemela := conTipo(gestion(t, 2, 1, "2025-06-08"), domain.ContactoEfectivo)
	out = AtribuirPagos([]domain.Pago{pago(t, "D-1", "2025-06-10", 300, 1)},
		[]domain.Gestion{gemela, liviana}, VentanaAtribucionDias, 1)
	if *out[0].GestionSeq != 0 {
		t.Fatalf("full tie resolves to the lowest seq, got %d", *out[0].GestionSeq)
	}
}

func TestAtribuirPagosWindowInclusive(t *testing.T) {
	borde := conTipo(gestion(t, 0, 1, "2025-05-11"), domain.ContactoEfectivo) // exactly 30 days back
	fuera := conTipo(gestion(t, 1, 1, "2025-05-10"), domain.ContactoEfectivo) // 31 days back

	out := AtribuirPagos([]domain.Pago{pago(t, "D-1", "2025-06-10", 300, 1)},
		[]domain.Gestion{fuera, borde}, VentanaAtribucionDias, 1)
	if out[0].Motivo != domain.MotivoAtribuido || *out[0].GestionSeq != 0 {
		t.Fatalf("the window edge is inclusive, got %+v", out[0])
	}

	out = AtribuirPagos([]domain.Pago{pago(t, "D-1", "2025-06-10", 300, 1)},
		[]domain.Gestion{fuera}, VentanaAtribucionDias, 1)
	if out[0].Motivo != domain.MotivoSinGestion {
		t.Fatalf("31 days back is outside the window, got %s", out[0].Motivo)
	}
}

func TestAtribuirPagosSinGestion(t *testing.T) {
	// unassigned payment (no luna) and assigned payment without candidates
	pagos := []domain.Pago{
		pago(t, "D-1", "2025-06-10", 100, 0),
		pago(t, "D-2", "2025-06-10", 200, 9),
	}
	out := AtribuirPagos(pagos, nil, VentanaAtribucionDias, 1)
	if len(out) != 2 {
		t.Fatalf("every payment yields a result, got %d", len(out))
	}
	for _, a := range out {
		if a.Motivo != domain.MotivoSinGestion {
			t.Fatalf("expected SIN_GESTION, got %s", a.Motivo)
		}
		if a.GestionSeq != nil || a.Ejecutivo != nil {
			t.Fatalf("unattributed payments carry no gestion fields: %+v", a)
		}
	}
	if out[1].MontoPagado != 200 {
		t.Fatal("payment amounts must survive unattributed")
	}
}

func TestAtribuirPagosDaysAcrossDSTTransition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	g := conTipo(gestion(t, 0, 1, "2025-03-08"), domain.ContactoEfectivo)
	g.Fecha = time.Date(2025, 3, 8, 9, 0, 0, 0, ny)
	p := pago(t, "D-1", "2025-03-10", 100, 1)
	// two civil days later, over the 2025-03-09 spring-forward
	p.FechaPago = time.Date(2025, 3, 10, 9, 0, 0, 0, ny)

	out := AtribuirPagos([]domain.Pago{p}, []domain.Gestion{g}, VentanaAtribucionDias, 1)
	if out[0].Motivo != domain.MotivoAtribuido {
		t.Fatalf("expected attributed payment, got %s", out[0].Motivo)
	}
	if *out[0].DiasDesdeGestion != 2 {
		t.Fatalf("expected 2 civil days since gestion, got %d", *out[0].DiasDesdeGestion)
	}
}

func TestAtribuirPagosDeterministicAcrossWorkers(t *testing.T) {
	var stream []domain.Gestion
	var pagos []domain.Pago
	for i := 0; i < 40; i++ {
		luna := int64(i%7 + 1)
		tipo := domain.NoContacto
		if i%3 == 0 {
			tipo = domain.ContactoEfectivo
		}
		g := gestion(t, i, luna, "2025-06-05")
		g.Peso = float64(i % 5)
		stream = append(stream, conTipo(g, tipo))
		pagos = append(pagos, pago(t, "D-1", "2025-06-10", float64(10+i), luna))
	}

	secuencial := AtribuirPagos(pagos, stream, VentanaAtribucionDias, 1)
	paralelo := AtribuirPagos(pagos, stream, VentanaAtribucionDias, 8)
	if !reflect.DeepEqual(secuencial, paralelo) {
		t.Fatal("worker count must not change the attribution output")
	}
}
