package repository

import (
	"context"
	"database/sql"
	"time"

	"faco-weekly/internal/domain"
)

type CalendarRepository struct {
	db *sql.DB
}

func NewCalendarRepository(db *sql.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// List returns the control calendar rows with assignment date on or after
// desde. The cartera classification is derived from the archivo pattern.
func (r *CalendarRepository) List(ctx context.Context, desde time.Time) ([]domain.Campania, error) {
	query := `
		SELECT archivo, suma_lineas, fecha_asignacion, fecha_cierre, vencimiento
		FROM calendario_v2
		WHERE fecha_asignacion >= $1
		ORDER BY fecha_asignacion DESC`

	rows, err := r.db.QueryContext(ctx, query, desde)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Campania
	for rows.Next() {
		var c domain.Campania
		var vencimiento sql.NullInt64
		if err := rows.Scan(&c.Archivo, &c.SumaLineas, &c.FechaAsignacion, &c.FechaCierre, &vencimiento); err != nil {
			return nil, err
		}
		if vencimiento.Valid {
			c.Vencimiento = int(vencimiento.Int64)
		}
		c.TipoCartera = domain.CarteraDeArchivo(c.Archivo)
		out = append(out, c)
	}
	return out, rows.Err()
}
