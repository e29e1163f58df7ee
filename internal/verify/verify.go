// Package verify reconstructs the arithmetic of an OCR-transcribed invoice
// and flags inconsistencies between what OCR read and what the numbers imply.
//
// The pass is stateless and per-invoice: normalize the text, classify its
// layout, run the layout's extraction heuristics, and reconcile the computed
// aggregates against the invoice's own reported total. Malformed lines are
// skipped, never fatal; the pass degrades to "calculated value only" when the
// invoice declares no total.
package verify

// Verify runs the full verification pass on raw OCR text.
func Verify(rawText string) *Result {
	normalized := NormalizeText(rawText)

	var result *Result
	switch Classify(normalized) {
	case LayoutImpuestos:
		result = extractImpuestos(normalized)
	case LayoutValor:
		result = extractValor(normalized)
	case LayoutSimple:
		result = extractSimple(normalized)
	case LayoutEnglish:
		result = extractEnglish(normalized)
	default:
		result = extractUniversal(normalized)
	}

	result.NormalizedText = normalized
	return result
}
