package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"faco-weekly/internal/domain"

	"github.com/xuri/excelize/v2"
)

func fechaRun(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return parsed
}

type fakeCalendar struct{ filas []domain.Campania }

func (f fakeCalendar) List(ctx context.Context, desde time.Time) ([]domain.Campania, error) {
	return f.filas, nil
}

type fakeAssignments struct{ filas []domain.Asignacion }

func (f fakeAssignments) ListByArchivos(ctx context.Context, archivos []string, corte time.Time) ([]domain.Asignacion, error) {
	return f.filas, nil
}

type fakeDeuda struct{ filas []domain.Deuda }

func (f fakeDeuda) ListVigente(ctx context.Context, corte time.Time) ([]domain.Deuda, error) {
	return f.filas, nil
}

type fakeGestiones struct {
	call     []domain.GestionCruda
	voicebot []domain.GestionCruda
	agentes  map[string]domain.Agente
}

func (f fakeGestiones) ListCall(ctx context.Context, inicio, fin time.Time) ([]domain.GestionCruda, error) {
	return f.call, nil
}

func (f fakeGestiones) ListVoicebot(ctx context.Context, inicio, fin time.Time) ([]domain.GestionCruda, error) {
	return f.voicebot, nil
}

func (f fakeGestiones) ListAgentes(ctx context.Context) (map[string]domain.Agente, error) {
	return f.agentes, nil
}

type fakePagos struct{ filas []domain.Pago }

func (f fakePagos) List(ctx context.Context, inicio, fin time.Time) ([]domain.Pago, error) {
	return f.filas, nil
}

type memStore struct {
	name string
	data []byte
}

func (m *memStore) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	m.name = fileName
	m.data = data
	return fileName, nil
}

func (m *memStore) GetURL(ctx context.Context, fileName string) (string, error) {
	return "/files/" + fileName, nil
}

func TestRunWeeklyEndToEnd(t *testing.T) {
	correo := "maria.perez@faco.pe"

	calendario := fakeCalendar{filas: []domain.Campania{
		{Archivo: "CARTERA_Temprana_1", FechaAsignacion: fechaRun(t, "2025-05-20"), FechaCierre: fechaRun(t, "2025-06-15")},
	}}
	asignaciones := fakeAssignments{filas: []domain.Asignacion{
		{CodLuna: 100, Cuenta: "C-1", Archivo: "CARTERA_Temprana_1", FechaCarga: fechaRun(t, "2025-05-20")},
	}}
	deuda := fakeDeuda{filas: []domain.Deuda{
		{CodCuenta: "C-1", NroDocumento: "D-1", MontoExigible: 500},
	}}
	gestiones := fakeGestiones{
		call: []domain.GestionCruda{
			{Canal: domain.CanalCall, CodDocumento: "D-1", Fecha: fechaRun(t, "2025-06-03"),
				Tipificacion: "CONTACTO TITULAR", CorreoAgente: &correo},
			{Canal: domain.CanalCall, CodDocumento: "D-1", Fecha: fechaRun(t, "2025-06-08"),
				Tipificacion: "NO CONTESTA"},
		},
		agentes: map[string]domain.Agente{
			correo: {Correo: correo, Nombre: "Maria Perez", DNI: "44556677"},
		},
	}
	pagos := fakePagos{filas: []domain.Pago{
		{NroDocumento: "D-1", FechaPago: fechaRun(t, "2025-06-10"), MontoCancelado: 250},
	}}

	store := &memStore{}
	svc := NewRunService(calendario, asignaciones, deuda, gestiones, pagos, nil, store, nil,
		RunOptions{
			FechaCorte:      fechaRun(t, "2025-05-20"),
			VentanaDias:     30,
			UmbralHuerfanas: 0.05,
			Workers:         2,
		})

	svc.runWeekly(context.Background(), "runs:test", fechaRun(t, "2025-06-04"), fechaRun(t, "2025-06-11"), 1, time.Now())

	if store.data == nil {
		t.Fatal("pipeline should have produced and stored a workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(store.data))
	if err != nil {
		t.Fatalf("stored artifact is not a valid workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Resumen", "Validación", "Atribuciones", "Ranking"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("missing sheet %q", sheet)
		}
	}

	// the payment attributes to the effective contact, not the later failed call
	resultado, err := f.GetCellValue("Atribuciones", "E2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if resultado != "ATRIBUIDO" {
		t.Fatalf("expected attributed payment, got %q", resultado)
	}
	fechaGestion, _ := f.GetCellValue("Atribuciones", "H2")
	if fechaGestion != "2025-06-03" {
		t.Fatalf("expected attribution to the effective contact on 2025-06-03, got %q", fechaGestion)
	}
	ejecutivo, _ := f.GetCellValue("Atribuciones", "F2")
	if ejecutivo != "Maria Perez" {
		t.Fatalf("expected Maria Perez, got %q", ejecutivo)
	}
}

func TestStartWeeklyRunRejectsInvertedPeriod(t *testing.T) {
	svc := NewRunService(fakeCalendar{}, fakeAssignments{}, fakeDeuda{}, fakeGestiones{}, fakePagos{},
		nil, nil, nil, RunOptions{})

	_, err := svc.StartWeeklyRun(context.Background(),
		fechaRun(t, "2025-06-11"), fechaRun(t, "2025-06-04"), 1)
	if err == nil {
		t.Fatal("inverted period must be rejected before any work starts")
	}
}
