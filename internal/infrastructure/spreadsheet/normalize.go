package spreadsheet

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// integralDecimal matches text such as "3.0" or "12.000".
var integralDecimal = regexp.MustCompile(`^-?\d+\.0+$`)

// NormalizeNumber renders a numeric cell: integral values lose their
// fraction, others keep the shortest decimal form. NaN and Inf read as "".
func NormalizeNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// NormalizeText trims a text cell. "nan" placeholders read as empty and
// integral decimals such as "6.0" collapse to "6".
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}
	if integralDecimal.MatchString(s) {
		return s[:strings.IndexByte(s, '.')]
	}
	return s
}

// normalizeRaw normalizes a raw stored value. numeric is true for cells
// without a string type, whose raw value is the number as written in the file.
// Number formats are not applied, so a date-formatted cell yields its serial
// day number ("45122" for 2023-07-15) rather than a rendered date.
func normalizeRaw(raw string, numeric bool) string {
	if numeric {
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return NormalizeNumber(f)
		}
	}
	return NormalizeText(raw)
}

var folder = cases.Fold()

// fold lower-cases s and strips combining marks, so "JUSTIFICACIÓN" and
// "justificacion" compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return folder.String(out)
}

// containsFolded reports whether marker occurs in s ignoring case and accents.
func containsFolded(s, marker string) bool {
	return strings.Contains(fold(s), fold(marker))
}
