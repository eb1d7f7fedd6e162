package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime"
	"time"

	"faco-weekly/internal/clients"
	"faco-weekly/internal/core"
	"faco-weekly/internal/domain"

	"github.com/google/uuid"
)

type CalendarSource interface {
	List(ctx context.Context, desde time.Time) ([]domain.Campania, error)
}

type AssignmentSource interface {
	ListByArchivos(ctx context.Context, archivos []string, corte time.Time) ([]domain.Asignacion, error)
}

type DeudaSource interface {
	ListVigente(ctx context.Context, corte time.Time) ([]domain.Deuda, error)
}

type GestionSource interface {
	ListCall(ctx context.Context, inicio, fin time.Time) ([]domain.GestionCruda, error)
	ListVoicebot(ctx context.Context, inicio, fin time.Time) ([]domain.GestionCruda, error)
	ListAgentes(ctx context.Context) (map[string]domain.Agente, error)
}

type PagoSource interface {
	List(ctx context.Context, inicio, fin time.Time) ([]domain.Pago, error)
}

// Diagnosticos are the non-fatal data-quality counters of a run. They are
// always part of the run output, success or not, so drift is observable over
// time. GestionesFueraDeVigencia counts post-filter leakage and must read 0;
// the rejected counters are ordinary data-quality signals.
type Diagnosticos struct {
	AsignacionesHuerfanas            int `json:"asignaciones_huerfanas"`
	LunasMultiCartera                int `json:"lunas_multicartera"`
	GestionesRechazadasFueraVigencia int `json:"gestiones_rechazadas_fuera_vigencia"`
	GestionesRechazadasSinAsignacion int `json:"gestiones_rechazadas_sin_asignacion"`
	GestionesSinHomologar            int `json:"gestiones_sin_homologar"`
	GestionesMultiVigencia           int `json:"gestiones_multivigencia"`
	GestionesFueraDeVigencia         int `json:"gestiones_fuera_de_vigencia"`
	PagosSinGestion                  int `json:"pagos_sin_gestion"`
}

// RunStatus is the redis-persisted state of one weekly run.
type RunStatus struct {
	Key          string                `json:"key"`
	Type         string                `json:"type"`
	UserID       int64                 `json:"user_id"`
	Periodo      map[string]string     `json:"periodo"`
	Progress     float64               `json:"progress"`
	FileURL      *string               `json:"file_url"`
	Error        *string               `json:"error,omitempty"`
	Resumen      *core.Resumen         `json:"resumen,omitempty"`
	Reportes     []core.CampaniaReport `json:"reportes,omitempty"`
	Diagnosticos *Diagnosticos         `json:"diagnosticos,omitempty"`
	Created      time.Time             `json:"created_at"`
}

const (
	runSetKey  = "run_ids"
	runLastKey = "runs:last"
	runTTL     = 24 * time.Hour
)

// RunOptions are the business knobs of the pipeline.
type RunOptions struct {
	FechaCorte      time.Time
	VentanaDias     int
	UmbralHuerfanas float64
	Workers         int
}

type RunService struct {
	calendario   CalendarSource
	asignaciones AssignmentSource
	deuda        DeudaSource
	gestiones    GestionSource
	pagos        PagoSource

	redis *clients.RedisClient
	store clients.ReportStore
	ws    *clients.WebSocketClient

	homolog core.Homologacion
	opts    RunOptions
}

func NewRunService(
	calendario CalendarSource,
	asignaciones AssignmentSource,
	deuda DeudaSource,
	gestiones GestionSource,
	pagos PagoSource,
	redis *clients.RedisClient,
	store clients.ReportStore,
	ws *clients.WebSocketClient,
	opts RunOptions,
) *RunService {
	if opts.VentanaDias <= 0 {
		opts.VentanaDias = core.VentanaAtribucionDias
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &RunService{
		calendario:   calendario,
		asignaciones: asignaciones,
		deuda:        deuda,
		gestiones:    gestiones,
		pagos:        pagos,
		redis:        redis,
		store:        store,
		ws:           ws,
		homolog:      core.HomologacionPorDefecto(),
		opts:         opts,
	}
}

func (s *RunService) saveStatus(ctx context.Context, st *RunStatus) error {
	if s.redis == nil {
		return nil
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, st.Key, string(data), runTTL); err != nil {
		return err
	}
	if err := s.redis.SAdd(ctx, runSetKey, st.Key); err != nil {
		return err
	}
	return s.redis.Set(ctx, runLastKey, st.Key, runTTL)
}

// StartWeeklyRun registers a new run and processes it in the background.
// The returned run ID can be polled over GET /runs/{run_id} or watched over
// the websocket.
func (s *RunService) StartWeeklyRun(ctx context.Context, inicio, fin time.Time, userID int64) (string, error) {
	if fin.Before(inicio) {
		return "", fmt.Errorf("periodo inválido: fin %s anterior a inicio %s",
			fin.Format("2006-01-02"), inicio.Format("2006-01-02"))
	}

	runID := fmt.Sprintf("runs:%s", uuid.NewString())
	now := time.Now()

	status := &RunStatus{
		Key:    runID,
		Type:   "weekly",
		UserID: userID,
		Periodo: map[string]string{
			"inicio": inicio.Format("2006-01-02"),
			"fin":    fin.Format("2006-01-02"),
		},
		Progress: 0,
		Created:  now,
	}
	_ = s.saveStatus(ctx, status)

	go s.runWeekly(context.Background(), runID, inicio, fin, userID, now)

	return runID, nil
}

func (s *RunService) runWeekly(ctx context.Context, runID string, inicio, fin time.Time, userID int64, created time.Time) {
	status := &RunStatus{
		Key:    runID,
		Type:   "weekly",
		UserID: userID,
		Periodo: map[string]string{
			"inicio": inicio.Format("2006-01-02"),
			"fin":    fin.Format("2006-01-02"),
		},
		Created: created,
	}

	fail := func(stage string, err error) {
		errStr := fmt.Sprintf("%s: %v", stage, err)
		log.Printf("[RUN] %s failed: %s", runID, errStr)
		status.Error = &errStr
		status.Progress = 100
		_ = s.saveStatus(ctx, status)
		if s.ws != nil {
			_ = s.ws.NotifyRunFailed(ctx, userID, runID, errStr)
		}
	}

	advance := func(progress float64, stage string) {
		status.Progress = progress
		_ = s.saveStatus(ctx, status)
		if s.ws != nil {
			_ = s.ws.NotifyRunProgress(ctx, userID, runID, progress, stage)
		}
	}

	// 1. Control calendar.
	filas, err := s.calendario.List(ctx, s.opts.FechaCorte)
	if err != nil {
		fail("calendario", err)
		return
	}
	registry, err := core.LoadCalendar(filas)
	if err != nil {
		fail("calendario", err)
		return
	}
	if len(registry) == 0 {
		fail("calendario", fmt.Errorf("sin campañas en calendario desde %s", s.opts.FechaCorte.Format("2006-01-02")))
		return
	}
	advance(10, "calendario")

	// 2. Assignments for the calendar campaigns.
	asignaciones, err := s.asignaciones.ListByArchivos(ctx, registry.Archivos(), s.opts.FechaCorte)
	if err != nil {
		fail("asignaciones", err)
		return
	}
	advance(20, "asignaciones")

	// 3. Current debt at the period close; the deuda match decides who is
	// manageable and maps documents to lunas.
	deudas, err := s.deuda.ListVigente(ctx, fin)
	if err != nil {
		fail("deuda", err)
		return
	}
	docLuna := core.ApplyDeuda(asignaciones, deudas)

	resolution, err := core.Resolve(asignaciones, registry, s.opts.UmbralHuerfanas)
	if err != nil {
		fail("asignaciones", err)
		return
	}
	resolution.DocumentoLuna = docLuna
	advance(35, "universo")

	// 4. Management events, both channels, merged and vigencia-filtered.
	agentes, err := s.gestiones.ListAgentes(ctx)
	if err != nil {
		fail("agentes", err)
		return
	}
	call, err := s.gestiones.ListCall(ctx, inicio, fin)
	if err != nil {
		fail("gestiones", err)
		return
	}
	voicebot, err := s.gestiones.ListVoicebot(ctx, inicio, fin)
	if err != nil {
		fail("gestiones", err)
		return
	}
	stream, mergeStats := core.MergeGestiones(call, voicebot, agentes, resolution, registry, s.homolog)
	advance(55, "gestiones")

	// 5. Coverage over the filtered stream. A nonzero out-of-window count here
	// is a filter bypass and aborts the run.
	reportes, err := core.AnalizarCobertura(stream, registry)
	if err != nil {
		fail("cobertura", err)
		return
	}
	advance(65, "cobertura")

	// 6. Payments and attribution.
	pagos, err := s.pagos.List(ctx, inicio, fin)
	if err != nil {
		fail("pagos", err)
		return
	}
	for i := range pagos {
		if luna, ok := resolution.DocumentoLuna[pagos[i].NroDocumento]; ok {
			l := luna
			pagos[i].CodLuna = &l
		}
	}
	atribuciones := core.AtribuirPagos(pagos, stream, s.opts.VentanaDias, s.opts.Workers)
	advance(80, "atribucion")

	// 7. KPIs and diagnostics.
	resumen := core.CalcularResumen(asignaciones, resolution, stream, pagos, atribuciones)
	ranking := core.RankingAgentes(stream, atribuciones, 20)

	fueraPostFiltro := 0
	for _, r := range reportes {
		fueraPostFiltro += r.FueraDeVigencia
	}

	status.Resumen = &resumen
	status.Reportes = reportes
	status.Diagnosticos = &Diagnosticos{
		AsignacionesHuerfanas:            resolution.Huerfanas,
		LunasMultiCartera:                len(resolution.MultiMembership),
		GestionesRechazadasFueraVigencia: mergeStats.RechazadasFueraVig,
		GestionesRechazadasSinAsignacion: mergeStats.RechazadasSinAsignar,
		GestionesSinHomologar:            mergeStats.SinHomologar,
		GestionesMultiVigencia:           mergeStats.MultiVigencia,
		GestionesFueraDeVigencia:         fueraPostFiltro,
		PagosSinGestion:                  resumen.PagosSinGestion,
	}
	advance(90, "kpis")

	// 8. Excel artifact.
	data, err := BuildWeeklyReport(ReportData{
		Inicio:       inicio,
		Fin:          fin,
		Resumen:      resumen,
		Reportes:     reportes,
		Atribuciones: atribuciones,
		Ranking:      ranking,
	})
	if err != nil {
		fail("reporte", err)
		return
	}

	fileName := fmt.Sprintf("faco_weekly_%s.xlsx", time.Now().Format("20060102_150405"))
	if s.store != nil {
		advance(95, "subiendo")
		savedName, err := s.store.Save(ctx, fileName, data)
		if err != nil {
			fail("reporte", err)
			return
		}
		url, err := s.store.GetURL(ctx, savedName)
		if err != nil {
			fail("reporte", err)
			return
		}
		status.FileURL = &url
		status.Progress = 100
		_ = s.saveStatus(ctx, status)
		if s.ws != nil {
			_ = s.ws.NotifyRunProgress(ctx, userID, runID, 100, "listo")
			_ = s.ws.NotifyRunComplete(ctx, userID, runID, url, fileName)
		}
	} else {
		status.Progress = 100
		_ = s.saveStatus(ctx, status)
		if s.ws != nil {
			_ = s.ws.NotifyRunProgress(ctx, userID, runID, 100, "listo")
		}
	}

	log.Printf("[RUN] %s done: %d gestiones válidas, %d pagos, fuera_de_vigencia=%d",
		runID, resumen.TotalGestiones, resumen.TotalPagos, fueraPostFiltro)
}

// LastRunOutOfWindow reports the post-filter out-of-window count of the most
// recent run, the service's standing health signal. It must always be 0.
func (s *RunService) LastRunOutOfWindow(ctx context.Context) (int, bool) {
	if s.redis == nil {
		return 0, false
	}
	key, err := s.redis.Get(ctx, runLastKey)
	if err != nil {
		return 0, false
	}
	data, err := s.redis.Get(ctx, key)
	if err != nil {
		return 0, false
	}
	var st RunStatus
	if err := json.Unmarshal([]byte(data), &st); err != nil || st.Diagnosticos == nil {
		return 0, false
	}
	return st.Diagnosticos.GestionesFueraDeVigencia, true
}
