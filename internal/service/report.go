package service

import (
	"fmt"
	"time"

	"faco-weekly/internal/core"
	"faco-weekly/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ReportData is everything the weekly workbook renders.
type ReportData struct {
	Inicio       time.Time
	Fin          time.Time
	Resumen      core.Resumen
	Reportes     []core.CampaniaReport
	Atribuciones []domain.Atribucion
	Ranking      []core.AgenteRanking
}

type atribucionColumn struct {
	Header string
	Value  func(a domain.Atribucion) any
}

var atribucionColumns = []atribucionColumn{
	{Header: "Documento", Value: func(a domain.Atribucion) any { return a.NroDocumento }},
	{Header: "Cod Luna", Value: func(a domain.Atribucion) any { return a.CodLuna }},
	{Header: "Fecha Pago", Value: func(a domain.Atribucion) any { return a.FechaPago.Format("2006-01-02") }},
	{Header: "Monto Pagado", Value: func(a domain.Atribucion) any { return a.MontoPagado }},
	{Header: "Resultado", Value: func(a domain.Atribucion) any { return a.Motivo }},
	{Header: "Ejecutivo", Value: func(a domain.Atribucion) any { return strPtr(a.Ejecutivo) }},
	{Header: "Canal", Value: func(a domain.Atribucion) any {
		if a.Canal == nil {
			return ""
		}
		return string(*a.Canal)
	}},
	{Header: "Fecha Gestión", Value: func(a domain.Atribucion) any {
		if a.FechaGestion == nil {
			return ""
		}
		return a.FechaGestion.Format("2006-01-02")
	}},
	{Header: "Tipo Contacto", Value: func(a domain.Atribucion) any {
		if a.TipoContacto == nil {
			return ""
		}
		return string(*a.TipoContacto)
	}},
	{Header: "Días desde Gestión", Value: func(a domain.Atribucion) any {
		if a.DiasDesdeGestion == nil {
			return ""
		}
		return *a.DiasDesdeGestion
	}},
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// BuildWeeklyReport renders the run output into an XLSX workbook with four
// sheets: executive summary, per-campaign validation, payment attributions and
// the agent ranking.
func BuildWeeklyReport(data ReportData) ([]byte, error) {
	f := excelize.NewFile()

	if err := buildResumenSheet(f, data); err != nil {
		return nil, err
	}
	if err := buildValidacionSheet(f, data.Reportes); err != nil {
		return nil, err
	}
	if err := buildAtribucionesSheet(f, data.Atribuciones); err != nil {
		return nil, err
	}
	if err := buildRankingSheet(f, data.Ranking); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildResumenSheet(f *excelize.File, data ReportData) error {
	sheet := "Resumen"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rows := [][2]any{
		{"Período", fmt.Sprintf("%s a %s", data.Inicio.Format("2006-01-02"), data.Fin.Format("2006-01-02"))},
		{"Clientes asignados", data.Resumen.TotalAsignados},
		{"Cuentas", data.Resumen.TotalCuentas},
		{"Universo gestionable", data.Resumen.UniversoGestionable},
		{"Gestiones válidas", data.Resumen.TotalGestiones},
		{"Clientes gestionados", data.Resumen.ClientesGestionados},
		{"Pagos", data.Resumen.TotalPagos},
		{"Monto pagado", data.Resumen.MontoTotalPagos},
		{"Tasa contactabilidad %", data.Resumen.TasaContactabilidad},
		{"Tasa atribución %", data.Resumen.TasaAtribucion},
		{"Intensidad de gestión", data.Resumen.IntensidadGestion},
		{"Ticket promedio pago", data.Resumen.TicketPromedioPago},
		{"Pagos sin gestión", data.Resumen.PagosSinGestion},
		{"Lunas multicartera", data.Resumen.LunasMultiCartera},
	}
	for i, row := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(sheet, labelCell, row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, valueCell, row[1]); err != nil {
			return err
		}
	}
	return nil
}

func buildValidacionSheet(f *excelize.File, reportes []core.CampaniaReport) error {
	sheet := "Validación"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Cartera", "Archivo", "Gestiones válidas", "Fuera de vigencia",
		"Lunas gestionadas", "Días con gestión", "Días vigencia", "Cobertura %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for row, r := range reportes {
		values := []any{r.TipoCartera, r.Archivo, r.Validas, r.FueraDeVigencia,
			r.LunasGestionadas, r.DiasConGestion, r.DiasVigencia, r.CoberturaPct}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildAtribucionesSheet(f *excelize.File, atribuciones []domain.Atribucion) error {
	sheet := "Atribuciones"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for i, col := range atribucionColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
	}
	for row, a := range atribuciones {
		for colIdx, col := range atribucionColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row+2)
			if err := f.SetCellValue(sheet, cell, col.Value(a)); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildRankingSheet(f *excelize.File, ranking []core.AgenteRanking) error {
	sheet := "Ranking"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Ejecutivo", "Gestiones", "Contactos efectivos", "No contactos",
		"Contactabilidad %", "Monto comprometido", "Monto atribuido", "Clientes pagaron"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for row, a := range ranking {
		values := []any{a.Ejecutivo, a.TotalGestiones, a.ContactosEfectivos, a.NoContactos,
			a.TasaContactabilidad, a.MontoComprometido, a.MontoAtribuido, a.ClientesPagaron}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
