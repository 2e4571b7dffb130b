package numinput

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatFunc post-processes the rounded value before prefix and suffix are applied.
type FormatFunc func(rounded string) string

// FormatDisplay renders value the way the field shows it:
//
//	prefix + format(round(value, precision)) + suffix
//
// When format is nil the rounded string is used as is.
func FormatDisplay(value float64, precision int, prefix, suffix string, format FormatFunc) string {
	s := ToFixed(value, precision)
	if format != nil {
		s = format(s)
	}
	return prefix + s + suffix
}

// ToFixed formats v in fixed-point notation with exactly precision fraction
// digits. Ties round away from zero. Negative precision is treated as zero.
// Magnitudes of 1e21 and above use the shortest exponential form, e.g.
// "1e+21", whatever the precision.
func ToFixed(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	precision = max(0, min(precision, maxPrecision))

	// The binary value has at most 1074 fraction digits, so this is exact.
	exact := new(big.Float).SetFloat64(math.Abs(v)).Text('f', 1100)
	intPart, frac, _ := strings.Cut(exact, ".")

	digits := intPart + frac[:precision]
	if frac[precision] >= '5' {
		digits = incrementDigits(digits)
	}

	s := digits
	if precision > 0 {
		cut := len(digits) - precision
		s = digits[:cut] + "." + digits[cut:]
	}
	if v < 0 {
		s = "-" + s
	}
	return s
}

func incrementDigits(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == '9' {
			b[i] = '0'
			continue
		}
		b[i]++
		return string(b)
	}
	return "1" + string(b)
}
