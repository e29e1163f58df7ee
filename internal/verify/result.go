package verify

import "math"

// Tolerances for the arithmetic checks, in the invoice's currency units.
const (
	LineTolerance  = 0.5 // quantity x price vs the line's own total
	TotalTolerance = 1.0 // calculated invoice total vs the reported total
)

// LineCheck is the verdict for one extracted invoice line.
type LineCheck struct {
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	Calculated float64 `json:"calculated"` // quantity x unit price
	LineTotal  float64 `json:"lineTotal"`  // amount as OCR read it

	// Valor layout only: the OCR net worth column and the per-line tax
	// implied by valor total minus net worth.
	NetWorth *float64 `json:"netWorth,omitempty"`
	Tax      *float64 `json:"tax,omitempty"`

	// Match is nil for layouts that carry no per-line verdict.
	Match *bool `json:"match,omitempty"`
}

// TotalCheck is the whole-invoice verdict.
type TotalCheck struct {
	Calculated float64  `json:"calculated"`
	Tax        float64  `json:"tax,omitempty"`      // accumulated per-line tax (valor layout)
	Reported   *float64 `json:"reported,omitempty"` // absent when no "total" label was found
	Match      *bool    `json:"match,omitempty"`    // absent when there is nothing to compare against
}

// EnglishFields holds the single-value fields of the English layout. Labels
// and values frequently end up on separate lines in English invoices, so each
// field is scanned independently and the last occurrence wins.
type EnglishFields struct {
	Qty        *float64 `json:"qty,omitempty"`
	NetPrice   *float64 `json:"netPrice,omitempty"`
	NetWorth   *float64 `json:"netWorth,omitempty"`
	VATPercent *float64 `json:"vatPercent,omitempty"`
	Gross      *float64 `json:"gross,omitempty"`

	CalcNet   float64 `json:"calcNet"`
	CalcVAT   float64 `json:"calcVat"`
	CalcTotal float64 `json:"calcTotal"`
}

// TaxBreakdown holds the fields of the base imponible / IVA / IRPF layout.
// Calculated stays nil when no base was found: that is a void result, not a
// zero.
type TaxBreakdown struct {
	Base          *float64 `json:"base,omitempty"`
	IVA           *float64 `json:"iva,omitempty"`
	IRPF          *float64 `json:"irpf,omitempty"`
	ReportedTotal *float64 `json:"reportedTotal,omitempty"`
	Calculated    *float64 `json:"calculated,omitempty"`
	Match         *bool    `json:"match,omitempty"`
}

// Result is the full verification record for one invoice.
type Result struct {
	Layout         Layout          `json:"layout"`
	NormalizedText string          `json:"normalizedText,omitempty"`
	Lines          []LineCheck     `json:"lines,omitempty"`
	Totals         *TotalCheck     `json:"totals,omitempty"`
	English        *EnglishFields  `json:"english,omitempty"`
	Taxes          *TaxBreakdown   `json:"taxes,omitempty"`
}

// MatchedLines counts the lines whose per-line check passed.
func (r *Result) MatchedLines() int {
	n := 0
	for _, l := range r.Lines {
		if l.Match != nil && *l.Match {
			n++
		}
	}
	return n
}

// withinTolerance is the single reconciliation rule: strict inequality, as
// the tolerance itself is already generous.
func withinTolerance(expected, actual, tolerance float64) bool {
	return math.Abs(expected-actual) < tolerance
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }
