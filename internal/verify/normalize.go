package verify

import "strings"

// ocrReplacements maps OCR misreads of the column keywords to their corrected
// form. The targets are disjoint, so application order does not matter.
var ocrReplacements = [][2]string{
	{"precioneto", "precio neto"},
	{"valorneto", "valor neto"},
	{"imporie", "importe"},
	{"imporle", "importe"},
	{"cantldad", "cantidad"},
	{"totai", "total"},
}

// NormalizeText lower-cases raw OCR output and fixes the known keyword
// misreads. The input is never modified.
func NormalizeText(text string) string {
	t := strings.ToLower(text)
	for _, r := range ocrReplacements {
		t = strings.ReplaceAll(t, r[0], r[1])
	}
	return t
}
