package export

import "infogastos/internal/report"

// Sheet names mirror the tabs of the original workbook export.
const (
	SheetKPIs        = "KPIs"
	SheetPeriods     = "Por Período"
	SheetTypes       = "Por Tipo"
	SheetResponsible = "Por Responsable"
	SheetClients     = "Por Cliente"
	SheetProvinces   = "Por Provincia"
	SheetVAT         = "IVA"
)

// BuildSheets flattens a report result into one sheet per table plus a KPI
// sheet. Row order is the result's own order, which the engine already made
// deterministic.
func BuildSheets(res *report.Result) []Sheet {
	return []Sheet{
		kpiSheet(res),
		periodSheet(res.Periods),
		breakdownSheet(SheetTypes, "Tipo", res.ByExpenseType),
		breakdownSheet(SheetResponsible, "Responsable", res.ByResponsible),
		breakdownSheet(SheetClients, "Cliente", res.ByClient),
		breakdownSheet(SheetProvinces, "Provincia", res.ByProvince),
		vatSheet(res.VAT),
	}
}

func kpiSheet(res *report.Result) Sheet {
	rows := [][]interface{}{
		{"Indicador", "Valor"},
		{"Gasto total", res.KPIs.TotalAmount},
		{"Gasto promedio diario", res.KPIs.AverageDaily},
	}
	if v := res.KPIs.VariationVsPrevious; v != nil {
		rows = append(rows, []interface{}{"Variación vs período anterior (%)", *v})
	} else {
		rows = append(rows, []interface{}{"Variación vs período anterior (%)", "N/A"})
	}
	rows = append(rows,
		[]interface{}{"Tipo de gasto principal", res.KPIs.TopExpenseType.Label},
		[]interface{}{"Cliente principal", res.KPIs.TopClient.Label},
		[]interface{}{"Mayor gastador (" + res.KPIs.TopSpender.Currency + ")", res.KPIs.TopSpender.Label},
	)
	if res.KPIs.ObservedFrom != "" {
		rows = append(rows, []interface{}{"Período observado", res.KPIs.ObservedFrom + " a " + res.KPIs.ObservedTo})
	}
	return Sheet{Name: SheetKPIs, Rows: rows}
}

func periodSheet(buckets []report.PeriodBucket) Sheet {
	rows := [][]interface{}{{"Período", "Cantidad", "Monto", "Ticket promedio"}}
	for _, b := range buckets {
		rows = append(rows, []interface{}{b.Period, b.Count, b.Total, b.AverageTicket})
	}
	return Sheet{Name: SheetPeriods, Rows: rows}
}

func breakdownSheet(name, labelHeader string, table []report.Row) Sheet {
	rows := [][]interface{}{{labelHeader, "Cantidad", "Monto", "% del total"}}
	for _, r := range table {
		rows = append(rows, []interface{}{r.Label, r.Count, r.Amount, r.Percentage})
	}
	return Sheet{Name: name, Rows: rows}
}

func vatSheet(s report.VATSummary) Sheet {
	rows := [][]interface{}{{"Tipo", "Moneda", "Neto", "IVA", "Bruto"}}
	for _, line := range s.Lines {
		rows = append(rows, []interface{}{line.ExpenseType, line.Currency, line.Net, line.VAT, line.Gross})
	}
	rows = append(rows, []interface{}{"TOTAL GENERAL (" + s.Currency + ")", "", s.TotalNet, s.TotalVAT, s.TotalGross})
	return Sheet{Name: SheetVAT, Rows: rows}
}
