package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"faco-weekly/internal/domain"
)

type GestionRepository struct {
	db *sql.DB
}

func NewGestionRepository(db *sql.DB) *GestionRepository {
	return &GestionRepository{db: db}
}

// ListCall returns the human-channel rows of the period, untyped: homologation
// happens in the merger, not in SQL.
func (r *GestionRepository) ListCall(ctx context.Context, inicio, fin time.Time) ([]domain.GestionCruda, error) {
	query := `
		SELECT document, date, COALESCE(nombre_agente, ''), correo_agente,
		       COALESCE(management, ''), COALESCE(sub_management, ''),
		       COALESCE(duracion, 0), monto_compromiso, fecha_compromiso
		FROM mibotair
		WHERE DATE(date) BETWEEN $1 AND $2`

	rows, err := r.db.QueryContext(ctx, query, inicio, fin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GestionCruda
	for rows.Next() {
		g := domain.GestionCruda{Canal: domain.CanalCall}
		var (
			correo     sql.NullString
			monto      sql.NullFloat64
			compromiso sql.NullTime
		)
		if err := rows.Scan(&g.CodDocumento, &g.Fecha, &g.NombreAgente, &correo,
			&g.Tipificacion, &g.SubTipificacion, &g.Duracion, &monto, &compromiso); err != nil {
			return nil, err
		}
		if correo.Valid {
			c := correo.String
			g.CorreoAgente = &c
		}
		if monto.Valid {
			m := monto.Float64
			g.MontoCompromiso = &m
		}
		if compromiso.Valid {
			g.FechaCompromiso = &compromiso.Time
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ListVoicebot returns the automated-channel rows of the period.
func (r *GestionRepository) ListVoicebot(ctx context.Context, inicio, fin time.Time) ([]domain.GestionCruda, error) {
	query := `
		SELECT document, date, COALESCE(management, ''), COALESCE(sub_management, ''),
		       COALESCE(duracion, 0), fecha_compromiso, COALESCE(compromiso, '')
		FROM voicebot
		WHERE DATE(date) BETWEEN $1 AND $2`

	rows, err := r.db.QueryContext(ctx, query, inicio, fin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GestionCruda
	for rows.Next() {
		g := domain.GestionCruda{Canal: domain.CanalVoicebot}
		var compromiso sql.NullTime
		if err := rows.Scan(&g.CodDocumento, &g.Fecha, &g.Tipificacion, &g.SubTipificacion,
			&g.Duracion, &compromiso, &g.Compromiso); err != nil {
			return nil, err
		}
		if compromiso.Valid {
			g.FechaCompromiso = &compromiso.Time
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ListAgentes loads the agent directory keyed by lowercased corporate email.
func (r *GestionRepository) ListAgentes(ctx context.Context) (map[string]domain.Agente, error) {
	query := `SELECT correo, nombre, COALESCE(dni, '') FROM usuarios WHERE correo IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.Agente)
	for rows.Next() {
		var a domain.Agente
		if err := rows.Scan(&a.Correo, &a.Nombre, &a.DNI); err != nil {
			return nil, err
		}
		out[strings.ToLower(strings.TrimSpace(a.Correo))] = a
	}
	return out, rows.Err()
}
