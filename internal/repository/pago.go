package repository

import (
	"context"
	"database/sql"
	"time"

	"faco-weekly/internal/domain"
)

type PagoRepository struct {
	db *sql.DB
}

func NewPagoRepository(db *sql.DB) *PagoRepository {
	return &PagoRepository{db: db}
}

// List returns non-rejected payments of the period with a positive amount.
func (r *PagoRepository) List(ctx context.Context, inicio, fin time.Time) ([]domain.Pago, error) {
	query := `
		SELECT cod_sistema, nro_documento, monto_cancelado, fecha_pago, archivo
		FROM pagos
		WHERE fecha_pago BETWEEN $1 AND $2
		  AND motivo_rechazo IS NULL
		  AND monto_cancelado > 0`

	rows, err := r.db.QueryContext(ctx, query, inicio, fin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Pago
	for rows.Next() {
		var p domain.Pago
		if err := rows.Scan(&p.CodSistema, &p.NroDocumento, &p.MontoCancelado, &p.FechaPago, &p.Archivo); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
