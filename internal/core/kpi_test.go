package core

import (
	"testing"

	"faco-weekly/internal/domain"
)

func TestCalcularResumen(t *testing.T) {
	asignaciones := []domain.Asignacion{
		asignacion(t, 1, "C-1", "CARTERA_AN_1", "2025-06-01"),
		asignacion(t, 1, "C-2", "CARTERA_AN_1", "2025-06-01"),
		asignacion(t, 2, "C-3", "CARTERA_AN_1", "2025-06-01"),
	}
	res := &Resolution{
		Universe:        map[int64]bool{1: true, 2: true},
		MultiMembership: map[int64]bool{1: true},
	}
	stream := []domain.Gestion{
		conTipo(gestion(t, 0, 1, "2025-06-02"), domain.ContactoEfectivo),
		conTipo(gestion(t, 1, 1, "2025-06-03"), domain.NoContacto),
	}
	pagos := []domain.Pago{
		pago(t, "D-1", "2025-06-05", 100, 1),
		pago(t, "D-2", "2025-06-05", 300, 2),
	}
	atribuciones := []domain.Atribucion{
		{Motivo: domain.MotivoAtribuido, MontoPagado: 100},
		{Motivo: domain.MotivoSinGestion, MontoPagado: 300},
	}

	r := CalcularResumen(asignaciones, res, stream, pagos, atribuciones)

	if r.TotalAsignados != 2 || r.TotalCuentas != 3 {
		t.Fatalf("expected 2 lunas / 3 cuentas, got %d/%d", r.TotalAsignados, r.TotalCuentas)
	}
	if r.UniversoGestionable != 2 {
		t.Fatalf("expected universe 2, got %d", r.UniversoGestionable)
	}
	if r.ClientesGestionados != 1 {
		t.Fatalf("expected 1 managed client, got %d", r.ClientesGestionados)
	}
	if r.TasaContactabilidad != 50 {
		t.Fatalf("1 effective of 2 gestiones is 50%%, got %v", r.TasaContactabilidad)
	}
	if r.TasaAtribucion != 50 {
		t.Fatalf("1 attributed of 2 payments is 50%%, got %v", r.TasaAtribucion)
	}
	if r.MontoTotalPagos != 400 || r.TicketPromedioPago != 200 {
		t.Fatalf("payment totals off: %v / %v", r.MontoTotalPagos, r.TicketPromedioPago)
	}
	if r.PagosSinGestion != 1 {
		t.Fatalf("expected 1 payment without gestion, got %d", r.PagosSinGestion)
	}
	if r.IntensidadGestion != 2 {
		t.Fatalf("2 gestiones over 1 client is intensity 2, got %v", r.IntensidadGestion)
	}
	if r.LunasMultiCartera != 1 {
		t.Fatalf("expected 1 multi-cartera luna, got %d", r.LunasMultiCartera)
	}
}

func TestCalcularResumenEmptyRun(t *testing.T) {
	r := CalcularResumen(nil, &Resolution{}, nil, nil, nil)
	if r.TasaContactabilidad != 0 || r.TasaAtribucion != 0 || r.IntensidadGestion != 0 {
		t.Fatalf("empty run must not divide by zero: %+v", r)
	}
}

func rankGestion(t *testing.T, seq int, ejecutivo string, tipo domain.TipoContacto, monto float64) domain.Gestion {
	t.Helper()
	g := conTipo(gestion(t, seq, 1, "2025-06-05"), tipo)
	g.Ejecutivo = ejecutivo
	g.MontoCompromiso = monto
	return g
}

func TestRankingAgentes(t *testing.T) {
	stream := []domain.Gestion{
		rankGestion(t, 0, "Ana", domain.ContactoEfectivo, 100),
		rankGestion(t, 1, "Ana", domain.NoContacto, 0),
		rankGestion(t, 2, "Bruno", domain.ContactoEfectivo, 50),
		rankGestion(t, 3, EjecutivoVoicebot, domain.ContactoEfectivo, 0),
	}
	ana := "Ana"
	atribuciones := []domain.Atribucion{
		{Motivo: domain.MotivoAtribuido, Ejecutivo: &ana, CodLuna: 1, MontoPagado: 250},
		{Motivo: domain.MotivoAtribuido, Ejecutivo: &ana, CodLuna: 1, MontoPagado: 150},
	}

	out := RankingAgentes(stream, atribuciones, 10)
	if len(out) != 2 {
		t.Fatalf("voicebot must be excluded from the ranking, got %d rows", len(out))
	}
	if out[0].Ejecutivo != "Ana" {
		t.Fatalf("Ana holds the attributed amount, got %s first", out[0].Ejecutivo)
	}
	if out[0].MontoAtribuido != 400 {
		t.Fatalf("expected 400 attributed, got %v", out[0].MontoAtribuido)
	}
	if out[0].ClientesPagaron != 1 {
		t.Fatalf("same luna paid twice is one paying client, got %d", out[0].ClientesPagaron)
	}
	if out[0].TasaContactabilidad != 50 {
		t.Fatalf("Ana's contactability should be 50, got %v", out[0].TasaContactabilidad)
	}
	if out[1].Ejecutivo != "Bruno" || out[1].MontoComprometido != 50 {
		t.Fatalf("unexpected second row: %+v", out[1])
	}
}

func TestRankingAgentesTopN(t *testing.T) {
	stream := []domain.Gestion{
		rankGestion(t, 0, "Ana", domain.ContactoEfectivo, 0),
		rankGestion(t, 1, "Bruno", domain.ContactoEfectivo, 0),
		rankGestion(t, 2, "Carla", domain.ContactoEfectivo, 0),
	}
	out := RankingAgentes(stream, nil, 2)
	if len(out) != 2 {
		t.Fatalf("expected top 2, got %d", len(out))
	}
	// identical stats fall back to the alphabetical order
	if out[0].Ejecutivo != "Ana" || out[1].Ejecutivo != "Bruno" {
		t.Fatalf("tie resolves alphabetically, got %s, %s", out[0].Ejecutivo, out[1].Ejecutivo)
	}
}
