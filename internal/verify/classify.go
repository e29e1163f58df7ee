package verify

import "strings"

// Layout identifies which of the five extraction strategies applies to an
// invoice's text. The set is closed; LayoutUniversal is the fallback, so
// classification always yields exactly one layout.
type Layout string

const (
	LayoutImpuestos Layout = "impuestos" // base imponible / iva / irpf breakdown
	LayoutValor     Layout = "valor"     // precio neto / valor neto columns
	LayoutSimple    Layout = "simple"    // cantidad / precio / importe columns
	LayoutEnglish   Layout = "english"   // qty / net price / net worth / vat / gross
	LayoutUniversal Layout = "universal" // fallback heuristics
)

// layoutRule pairs a keyword predicate with the layout it selects.
type layoutRule struct {
	layout Layout
	match  func(text string) bool
}

// layoutRules is evaluated in order; the first match wins. More specific
// keyword sets come before generic ones so that, for example, a tax breakdown
// that also mentions "cantidad" and "precio" still classifies as impuestos.
var layoutRules = []layoutRule{
	{LayoutImpuestos, func(t string) bool {
		return strings.Contains(t, "base imponible") && strings.Contains(t, "iva")
	}},
	{LayoutValor, func(t string) bool {
		return strings.Contains(t, "precio neto") && strings.Contains(t, "valor neto")
	}},
	{LayoutSimple, func(t string) bool {
		return strings.Contains(t, "cantidad") && strings.Contains(t, "precio") && strings.Contains(t, "importe")
	}},
	{LayoutEnglish, func(t string) bool {
		return strings.Contains(t, "qty") || strings.Contains(t, "net price")
	}},
}

// Classify selects the extraction strategy for normalized text.
func Classify(text string) Layout {
	for _, rule := range layoutRules {
		if rule.match(text) {
			return rule.layout
		}
	}
	return LayoutUniversal
}
