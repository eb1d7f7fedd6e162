package repository

import (
	"context"
	"database/sql"
	"time"

	"faco-weekly/internal/domain"
)

type DeudaRepository struct {
	db *sql.DB
}

func NewDeudaRepository(db *sql.DB) *DeudaRepository {
	return &DeudaRepository{db: db}
}

// ListVigente returns the most recent exigible-debt row per document as of the
// cutoff date.
func (r *DeudaRepository) ListVigente(ctx context.Context, corte time.Time) ([]domain.Deuda, error) {
	query := `
		WITH deuda_ranked AS (
			SELECT cod_cuenta, nro_documento, fecha_vencimiento, monto_exigible, archivo,
			       DATE(creado_el) AS fecha_carga,
			       ROW_NUMBER() OVER (PARTITION BY nro_documento ORDER BY DATE(creado_el) DESC) AS rn
			FROM tran_deuda
			WHERE DATE(creado_el) <= $1
			  AND motivo_rechazo IS NULL
			  AND monto_exigible > 0
		)
		SELECT cod_cuenta, nro_documento, fecha_vencimiento, monto_exigible, archivo, fecha_carga
		FROM deuda_ranked
		WHERE rn = 1`

	rows, err := r.db.QueryContext(ctx, query, corte)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Deuda
	for rows.Next() {
		var d domain.Deuda
		var vto sql.NullTime
		if err := rows.Scan(&d.CodCuenta, &d.NroDocumento, &vto, &d.MontoExigible, &d.Archivo, &d.FechaCarga); err != nil {
			return nil, err
		}
		if vto.Valid {
			d.FechaVencimiento = &vto.Time
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
