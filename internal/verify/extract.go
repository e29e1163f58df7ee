package verify

import (
	"regexp"
	"strconv"
	"strings"
)

// numberTokenRegex captures any numeric token with an optional decimal part
// in either separator convention.
var numberTokenRegex = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// dateLikeRegex matches dd/mm/yyyy-style fragments so date lines are never
// mistaken for item lines.
var dateLikeRegex = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)

// metadataKeywords flag header/footer lines that carry numbers but no line
// items: dates, tax IDs, parties, signatures, payment terms, bank accounts.
var metadataKeywords = []string{
	"fecha", "nit", "ci", "cliente", "vendedor", "firma", "sello",
	"condiciones", "observaciones", "iban", "n°", "factura",
}

// extractUniversal is the fallback strategy: on every plausible item line it
// maps the last three numeric tokens to quantity, unit price and line total.
func extractUniversal(text string) *Result {
	result := &Result{Layout: LayoutUniversal}
	var calculated float64

	for _, raw := range strings.Split(text, "\n") {
		line := strings.ToLower(strings.TrimSpace(raw))
		if line == "" {
			continue
		}
		if containsAny(line, metadataKeywords) {
			continue
		}
		if dateLikeRegex.MatchString(line) {
			continue
		}

		nums := numberTokenRegex.FindAllString(line, -1)
		if len(nums) < 2 {
			continue
		}
		if len(nums) < 3 {
			// Two tokens are too ambiguous to map onto qty/price/total.
			continue
		}

		qty, err := ParseNumber(nums[len(nums)-3])
		if err != nil {
			continue
		}
		price, err := ParseNumber(nums[len(nums)-2])
		if err != nil {
			continue
		}
		total, err := ParseNumber(nums[len(nums)-1])
		if err != nil {
			continue
		}

		// False-positive guard: a big "total" next to a small quantity and
		// price is almost always an invoice-level figure, not an item line.
		if total > 1000 && qty < 10 && price < 100 {
			continue
		}

		calc := qty * price
		calculated += total
		result.Lines = append(result.Lines, LineCheck{
			Quantity:   qty,
			UnitPrice:  price,
			Calculated: calc,
			LineTotal:  total,
			Match:      boolPtr(withinTolerance(calc, total, LineTolerance)),
		})
	}

	totals := &TotalCheck{Calculated: calculated}
	if reported, ok := FindReportedTotal(text); ok {
		totals.Reported = floatPtr(reported)
		totals.Match = boolPtr(withinTolerance(reported, calculated, TotalTolerance))
	}
	result.Totals = totals
	return result
}

// simpleLineRegex matches "3 Widget 10,00 30,00": integer quantity, item
// description, unit price, line total.
var simpleLineRegex = regexp.MustCompile(`(\d+)\s+[A-Za-zÁÉÍÓÚÑa-z]+\s+(\d+(?:[.,]\d+)?)\s+(\d+(?:[.,]\d+)?)`)

// extractSimple handles the Cantidad / Precio / Importe column layout. There
// is no reported-total comparison here; the accumulated importe is the report.
func extractSimple(text string) *Result {
	result := &Result{Layout: LayoutSimple}
	var calculated float64

	for _, line := range strings.Split(text, "\n") {
		m := simpleLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		price, err := ParseNumber(m[2])
		if err != nil {
			continue
		}
		total, err := ParseNumber(m[3])
		if err != nil {
			continue
		}

		calc := float64(qty) * price
		calculated += total
		result.Lines = append(result.Lines, LineCheck{
			Quantity:   float64(qty),
			UnitPrice:  price,
			Calculated: calc,
			LineTotal:  total,
			Match:      boolPtr(withinTolerance(calc, total, LineTolerance)),
		})
	}

	result.Totals = &TotalCheck{Calculated: calculated}
	return result
}

// valorLineRegex matches "2 Tornillos 5,00 10,00 21% 12,10": quantity,
// optional description word, net price, net worth, tax percentage, valor total.
var valorLineRegex = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s+\w*\s*(\d+(?:[.,]\d+)?)\s+(\d+(?:[.,]\d+)?)\s+\d+%?\s+(\d+(?:[.,]\d+)?)`)

// extractValor handles the Precio Neto / Valor Neto / Valor Total layout.
// Per-line tax is implied: valor total minus net worth. No per-line verdict
// is emitted; the layout reports the accumulated total and tax.
func extractValor(text string) *Result {
	result := &Result{Layout: LayoutValor}
	var calculated, calculatedTax float64

	for _, line := range strings.Split(text, "\n") {
		m := valorLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		qty, err := ParseNumber(m[1])
		if err != nil {
			continue
		}
		netPrice, err := ParseNumber(m[2])
		if err != nil {
			continue
		}
		netWorth, err := ParseNumber(m[3])
		if err != nil {
			continue
		}
		lineTotal, err := ParseNumber(m[4])
		if err != nil {
			continue
		}

		lineTax := lineTotal - netWorth
		calculated += lineTotal
		calculatedTax += lineTax
		result.Lines = append(result.Lines, LineCheck{
			Quantity:   qty,
			UnitPrice:  netPrice,
			Calculated: qty * netPrice,
			LineTotal:  lineTotal,
			NetWorth:   floatPtr(netWorth),
			Tax:        floatPtr(lineTax),
		})
	}

	result.Totals = &TotalCheck{Calculated: calculated, Tax: calculatedTax}
	return result
}

func containsAny(line string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(line, k) {
			return true
		}
	}
	return false
}
