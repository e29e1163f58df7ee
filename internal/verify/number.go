package verify

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedNumber is returned when a token cannot be parsed as a decimal
// after separator normalization. Callers skip the offending line or field.
var ErrMalformedNumber = errors.New("malformed number")

// groupedThousandsRegex matches numbers written with dot-grouped thousands and
// no decimal part: 1 to 3 leading digits followed by chained groups of exactly
// three (e.g. "1.451", "12.345"). "1234.56" and "1.5" do not match.
var groupedThousandsRegex = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// symbolStripper removes euro signs, whitespace and plus signs anywhere in the
// token. Minus signs are preserved (tax deductions can be negative).
var symbolStripper = regexp.MustCompile(`[€\s+]`)

// ParseNumber converts an OCR numeric token into a canonical float64,
// resolving the European ("1.234,56") versus standard ("1,234.56") separator
// ambiguity:
//
//  1. Both "," and "." present: "." is a thousands separator, "," the decimal.
//  2. Only ",": it is the decimal separator.
//  3. Only ".": if the token has the grouped-thousands shape the dots are
//     stripped; otherwise the token is already a standard decimal.
//
// A lone "1.234" therefore parses as 1234: a single ".ddd" group already has
// the grouped-thousands shape. "1.5" and "1234.56" keep their dot as the
// decimal point.
func ParseNumber(token string) (float64, error) {
	num := strings.TrimSpace(token)

	switch {
	case strings.Contains(num, ",") && strings.Contains(num, "."):
		// European format: 1.234,56
		num = strings.ReplaceAll(num, ".", "")
		num = strings.ReplaceAll(num, ",", ".")
	case strings.Contains(num, ","):
		num = strings.ReplaceAll(num, ",", ".")
	case strings.Contains(num, "."):
		if groupedThousandsRegex.MatchString(num) {
			num = strings.ReplaceAll(num, ".", "")
		}
	}

	num = symbolStripper.ReplaceAllString(num, "")

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, token)
	}
	return value, nil
}
