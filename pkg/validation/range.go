package validation

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Clamp snaps value into [min, max].
func Clamp(value, min, max float64) float64 {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// ClampInput applies range clamping to raw text the way a numeric input
// event handler does: values above max become max, values below min become
// min and everything else is returned untouched. Blank text counts as zero;
// text that is not a number is left alone.
func ClampInput(raw string, min, max float64) string {
	n, ok := parseNumber(raw)
	if !ok {
		return raw
	}
	if n > max {
		return formatNumber(max)
	}
	if n < min {
		return formatNumber(min)
	}
	return raw
}

// RangeField holds the value of a numeric input bounded by [Min, Max].
type RangeField struct {
	Min   float64
	Max   float64
	value string
}

// NewRangeField constructs a range field. Swapped bounds are reordered.
func NewRangeField(min, max float64) *RangeField {
	if min > max {
		min, max = max, min
	}
	return &RangeField{Min: min, Max: max}
}

// Input stores raw after clamping and returns the stored value.
func (r *RangeField) Input(raw string) string {
	r.value = ClampInput(raw, r.Min, r.Max)
	return r.value
}

// Value returns the stored text.
func (r *RangeField) Value() string {
	return r.value
}

// Number returns the stored value as a float. ok is false for non-numeric text.
func (r *RangeField) Number() (float64, bool) {
	return parseNumber(r.value)
}

var (
	decimalPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)
	prefixedBases  = map[byte]int{'x': 16, 'X': 16, 'o': 8, 'O': 8, 'b': 2, 'B': 2}
)

// parseNumber follows the JavaScript Number(string) grammar: surrounding
// whitespace is ignored, blank text is zero, Infinity is spelled out and
// 0x/0o/0b literals are unsigned integers.
func parseNumber(raw string) (float64, bool) {
	trimmed := strings.TrimFunc(raw, isECMASpace)
	switch trimmed {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(trimmed) > 2 && trimmed[0] == '0' {
		if base, ok := prefixedBases[trimmed[1]]; ok {
			n, ok := new(big.Int).SetString(trimmed[2:], base)
			if !ok || n.Sign() < 0 || strings.ContainsAny(trimmed[2:], "+-_") {
				return 0, false
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, true
		}
	}

	if !decimalPattern.MatchString(trimmed) {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
