package repository

import (
	"context"
	"database/sql"
	"time"

	"faco-weekly/internal/domain"
)

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListByArchivos returns non-rejected assignment rows loaded since the cutoff
// for the given campaign files.
func (r *AssignmentRepository) ListByArchivos(ctx context.Context, archivos []string, corte time.Time) ([]domain.Asignacion, error) {
	query := `
		SELECT cliente, cuenta, cod_luna, negocio, min_vto, tramo_gestion, zona,
		       decil_contacto, decil_pago, tipo_linea, cod_sistema, archivo, DATE(creado_el)
		FROM asignacion
		WHERE creado_el >= $1
		  AND archivo = ANY($2)
		  AND motivo_rechazo IS NULL`

	rows, err := r.db.QueryContext(ctx, query, corte, archivos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Asignacion
	for rows.Next() {
		var (
			a             domain.Asignacion
			minVto        sql.NullTime
			decilContacto sql.NullInt64
			decilPago     sql.NullInt64
		)
		if err := rows.Scan(
			&a.Cliente,
			&a.Cuenta,
			&a.CodLuna,
			&a.Negocio,
			&minVto,
			&a.TramoGestion,
			&a.Zona,
			&decilContacto,
			&decilPago,
			&a.TipoLinea,
			&a.CodSistema,
			&a.Archivo,
			&a.FechaCarga,
		); err != nil {
			return nil, err
		}
		if minVto.Valid {
			a.MinVto = &minVto.Time
		}
		if decilContacto.Valid {
			d := int(decilContacto.Int64)
			a.DecilContacto = &d
		}
		if decilPago.Valid {
			d := int(decilPago.Int64)
			a.DecilPago = &d
		}
		a.Servicio = domain.ServicioDeNegocio(a.Negocio)
		out = append(out, a)
	}
	return out, rows.Err()
}
