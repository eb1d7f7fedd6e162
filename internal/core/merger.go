package core

import (
	"strings"

	"faco-weekly/internal/domain"
)

// ReglaHomologacion maps a raw tipificacion onto a canonical outcome bucket
// when any of its substrings appears in the uppercased tipificacion.
type ReglaHomologacion struct {
	Contiene []string
	Tipo     domain.TipoContacto
}

// Homologacion holds the per-channel outcome tables plus the fallback bucket
// for tipificaciones no rule covers. It is read-only configuration: the merger
// never mutates it, so one table can serve concurrent runs.
type Homologacion struct {
	Reglas   map[domain.Canal][]ReglaHomologacion
	Fallback domain.TipoContacto
}

// HomologacionPorDefecto mirrors the production typification tables for the
// CALL and VOICEBOT channels.
func HomologacionPorDefecto() Homologacion {
	return Homologacion{
		Reglas: map[domain.Canal][]ReglaHomologacion{
			domain.CanalCall: {
				{Contiene: []string{"CONTACTO", "COMPROMISO", "PROMESA", "ACEPTA"}, Tipo: domain.ContactoEfectivo},
				{Contiene: []string{"NO CONTESTA", "OCUPADO", "APAGADO", "BUZÓN", "BUZON"}, Tipo: domain.NoContacto},
			},
			domain.CanalVoicebot: {
				{Contiene: []string{"CONTACTO", "COMPROMISO"}, Tipo: domain.ContactoEfectivo},
				{Contiene: []string{"NO CONTESTA", "OCUPADO", "APAGADO"}, Tipo: domain.NoContacto},
			},
		},
		Fallback: domain.ContactoNoEfectivo,
	}
}

// Clasificar maps one raw row onto its outcome bucket. Voicebot rows that
// carry an explicit compromiso flag are effective contacts regardless of the
// tipificacion text. Empty tipificaciones cannot be homologated.
func (h Homologacion) Clasificar(g domain.GestionCruda) domain.TipoContacto {
	tip := strings.ToUpper(strings.TrimSpace(g.Tipificacion))
	if g.Canal == domain.CanalVoicebot && strings.EqualFold(strings.TrimSpace(g.Compromiso), "SI") {
		return domain.ContactoEfectivo
	}
	if tip == "" {
		return domain.ContactoSinMapear
	}
	for _, regla := range h.Reglas[g.Canal] {
		for _, frag := range regla.Contiene {
			if strings.Contains(tip, frag) {
				return regla.Tipo
			}
		}
	}
	if h.Fallback != "" {
		return h.Fallback
	}
	return domain.ContactoSinMapear
}

// AgentDirectory resolves human agents by corporate email.
type AgentDirectory map[string]domain.Agente

// EjecutivoDiscador is the synthetic agent for human-channel rows without an
// identifiable agent; EjecutivoVoicebot for the automated channel.
const (
	EjecutivoDiscador = "DISCADOR"
	EjecutivoVoicebot = "VOICEBOT"
)

// MergeStats are the merger's diagnostics. Rejected events never reach the
// output stream but are always counted.
type MergeStats struct {
	Entrada              int
	Validas              int
	RechazadasFueraVig   int
	RechazadasSinAsignar int
	SinHomologar         int
	MultiVigencia        int
}

// MergeGestiones normalizes the CALL and VOICEBOT streams into one schema and
// runs every event through the vigencia filter. The returned stream contains
// only valid events, each stamped with a monotonically increasing Seq that
// later serves as the stable attribution tie-break.
func MergeGestiones(
	call []domain.GestionCruda,
	voicebot []domain.GestionCruda,
	agentes AgentDirectory,
	res *Resolution,
	reg Registry,
	homolog Homologacion,
) ([]domain.Gestion, MergeStats) {
	var (
		stream []domain.Gestion
		stats  MergeStats
		seq    int
	)

	procesar := func(cruda domain.GestionCruda) {
		stats.Entrada++

		codLuna, asignada := res.DocumentoLuna[cruda.CodDocumento]
		if !asignada {
			stats.RechazadasSinAsignar++
			return
		}

		match := ResolverCampania(codLuna, cruda.Archivo, cruda.Fecha, res.Membership, reg)
		if match.Kind == NoMatch {
			if len(res.Membership[codLuna]) == 0 {
				stats.RechazadasSinAsignar++
			} else {
				stats.RechazadasFueraVig++
			}
			return
		}
		if match.Kind == MultiMatch {
			stats.MultiVigencia++
		}

		tipo := homolog.Clasificar(cruda)
		if tipo == domain.ContactoSinMapear {
			stats.SinHomologar++
		}

		ejecutivo, dni := resolverEjecutivo(cruda, agentes)

		peso := 0.0
		monto := 0.0
		if cruda.MontoCompromiso != nil {
			monto = *cruda.MontoCompromiso
			peso = monto
		}

		stream = append(stream, domain.Gestion{
			Seq:             seq,
			CodLuna:         codLuna,
			CodDocumento:    cruda.CodDocumento,
			Campanias:       match.Archivos,
			Canal:           cruda.Canal,
			Fecha:           cruda.Fecha,
			Ejecutivo:       ejecutivo,
			EjecutivoDNI:    dni,
			TipoContacto:    tipo,
			Tipificacion:    cruda.Tipificacion,
			SubTipificacion: cruda.SubTipificacion,
			Duracion:        cruda.Duracion,
			MontoCompromiso: monto,
			Peso:            peso,
		})
		seq++
		stats.Validas++
	}

	for _, g := range call {
		procesar(g)
	}
	for _, g := range voicebot {
		procesar(g)
	}

	return stream, stats
}

func resolverEjecutivo(g domain.GestionCruda, agentes AgentDirectory) (string, string) {
	if g.Canal == domain.CanalVoicebot {
		return EjecutivoVoicebot, ""
	}
	if g.CorreoAgente != nil {
		if a, ok := agentes[strings.ToLower(strings.TrimSpace(*g.CorreoAgente))]; ok {
			return a.Nombre, a.DNI
		}
	}
	if nombre := strings.TrimSpace(g.NombreAgente); nombre != "" {
		return nombre, ""
	}
	return EjecutivoDiscador, ""
}
