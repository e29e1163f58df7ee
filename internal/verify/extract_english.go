package verify

import (
	"regexp"
	"strconv"
	"strings"
)

var vatPercentRegex = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)

// extractEnglish handles Qty / Net Price / Net Worth / VAT / Gross Worth
// invoices. English layouts wrap labels and values across lines, so each
// field is scanned independently with a one-line lookahead instead of a
// single combined pattern. Every trigger may fire more than once; the last
// occurrence of each field wins.
func extractEnglish(text string) *Result {
	result := &Result{Layout: LayoutEnglish}
	fields := &EnglishFields{}

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.ToLower(strings.TrimSpace(raw))

		lookahead := raw
		if i+1 < len(lines) {
			lookahead = raw + " " + lines[i+1]
		}

		if strings.Contains(line, "qty") {
			if v, ok := firstNumber(lookahead); ok {
				fields.Qty = floatPtr(v)
			}
		}
		if strings.Contains(line, "net price") {
			if v, ok := firstNumber(lookahead); ok {
				fields.NetPrice = floatPtr(v)
			}
		}
		if strings.Contains(line, "net worth") {
			if v, ok := firstNumber(lookahead); ok {
				fields.NetWorth = floatPtr(v)
			}
		}
		if strings.Contains(line, "vat") && strings.Contains(line, "%") {
			if m := vatPercentRegex.FindStringSubmatch(raw); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					fields.VATPercent = floatPtr(v)
				}
			}
		}
		if strings.Contains(line, "gross worth") || strings.Contains(line, "gross") {
			// Gross lines may list an intermediate value before the actual
			// gross figure, so the last number wins here.
			if v, ok := lastNumber(lookahead); ok {
				fields.Gross = floatPtr(v)
			}
		}
	}

	switch {
	case fields.NetWorth != nil:
		fields.CalcNet = *fields.NetWorth
	case fields.Qty != nil && fields.NetPrice != nil:
		fields.CalcNet = *fields.Qty * *fields.NetPrice
	}

	// A found non-zero VAT percentage beats the gross-minus-net fallback;
	// a printed "0 %" is treated like a missing rate.
	switch {
	case fields.VATPercent != nil && *fields.VATPercent != 0 && fields.CalcNet != 0:
		fields.CalcVAT = fields.CalcNet * *fields.VATPercent / 100
	case fields.Gross != nil && fields.CalcNet != 0:
		fields.CalcVAT = *fields.Gross - fields.CalcNet
	}
	fields.CalcTotal = fields.CalcNet + fields.CalcVAT

	totals := &TotalCheck{Calculated: fields.CalcTotal}
	if fields.Gross != nil {
		totals.Reported = fields.Gross
		totals.Match = boolPtr(withinTolerance(fields.CalcTotal, *fields.Gross, TotalTolerance))
	}

	result.English = fields
	result.Totals = totals
	return result
}

func firstNumber(s string) (float64, bool) {
	nums := numberTokenRegex.FindAllString(s, -1)
	if len(nums) == 0 {
		return 0, false
	}
	v, err := ParseNumber(nums[0])
	if err != nil {
		return 0, false
	}
	return v, true
}

func lastNumber(s string) (float64, bool) {
	nums := numberTokenRegex.FindAllString(s, -1)
	if len(nums) == 0 {
		return 0, false
	}
	v, err := ParseNumber(nums[len(nums)-1])
	if err != nil {
		return 0, false
	}
	return v, true
}
