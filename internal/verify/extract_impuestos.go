package verify

import "regexp"

var (
	baseImponibleRegex = regexp.MustCompile(`base imponible[:\s]+([\d.,-]+)`)
	ivaRegex           = regexp.MustCompile(`iva.*?:\s*(-?\d+[.,]?\d*)`)
	irpfRegex          = regexp.MustCompile(`irpf.*?:\s*(-?\d+[.,]?\d*)`)
)

// extractImpuestos handles invoices with a Base Imponible / IVA / IRPF
// breakdown and checks total = base + iva + irpf. IVA and IRPF can be
// negative (withholdings are printed as deductions). Without a base there is
// nothing to calculate: the result stays void rather than zero.
func extractImpuestos(text string) *Result {
	result := &Result{Layout: LayoutImpuestos}
	breakdown := &TaxBreakdown{}

	if m := baseImponibleRegex.FindStringSubmatch(text); m != nil {
		if v, err := ParseNumber(m[1]); err == nil {
			breakdown.Base = floatPtr(v)
		}
	}
	if m := ivaRegex.FindStringSubmatch(text); m != nil {
		if v, err := ParseNumber(m[1]); err == nil {
			breakdown.IVA = floatPtr(v)
		}
	}
	if m := irpfRegex.FindStringSubmatch(text); m != nil {
		if v, err := ParseNumber(m[1]); err == nil {
			breakdown.IRPF = floatPtr(v)
		}
	}
	if reported, ok := FindReportedTotal(text); ok {
		breakdown.ReportedTotal = floatPtr(reported)
	}

	if breakdown.Base != nil {
		calc := *breakdown.Base
		if breakdown.IVA != nil {
			calc += *breakdown.IVA
		}
		if breakdown.IRPF != nil {
			calc += *breakdown.IRPF
		}
		breakdown.Calculated = floatPtr(calc)

		totals := &TotalCheck{Calculated: calc}
		if breakdown.ReportedTotal != nil {
			match := withinTolerance(calc, *breakdown.ReportedTotal, TotalTolerance)
			breakdown.Match = boolPtr(match)
			totals.Reported = breakdown.ReportedTotal
			totals.Match = breakdown.Match
		}
		result.Totals = totals
	}

	result.Taxes = breakdown
	return result
}
