package verify

import (
	"regexp"
	"strings"
)

// reportedTotalRegex captures a "total"-labeled amount shaped like grouped
// thousands with exactly two decimals: 1.234,56 / 1,234.56 / 106,00.
var reportedTotalRegex = regexp.MustCompile(`total[s]?[^\d]*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2}))`)

// FindReportedTotal scans the text for the invoice's self-declared total.
// Invoices commonly restate the total near the signature block after the tax
// breakdown, so the last occurrence in document order wins. The second return
// is false when no candidate exists; that is not an error.
func FindReportedTotal(text string) (float64, bool) {
	matches := reportedTotalRegex.FindAllStringSubmatch(strings.ToLower(text), -1)
	if len(matches) == 0 {
		return 0, false
	}
	value, err := ParseNumber(matches[len(matches)-1][1])
	if err != nil {
		return 0, false
	}
	return value, true
}
