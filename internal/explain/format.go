package explain

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat formats a number label. Integral values keep a ".0" suffix;
// very small and very large magnitudes use exponent notation.
func FormatFloat(val float64) string {
	if math.IsInf(val, 1) {
		return "inf"
	}
	if math.IsInf(val, -1) {
		return "-inf"
	}
	if math.IsNaN(val) {
		return "nan"
	}
	absVal := math.Abs(val)
	if absVal != 0 && (absVal < 1e-4 || absVal >= 1e16) {
		return strconv.FormatFloat(val, 'e', -1, 64)
	}
	s := strconv.FormatFloat(val, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// QuoteString wraps s in single quotes, doubling any quotes inside.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
