// Package macro parses free-form macro-nutrient text into numbers.
package macro

import (
	"regexp"
	"strconv"
	"strings"
)

// Optional-decimal number, after commas have been normalized to dots.
var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// Parse converts a heterogeneous macro representation into a number.
// Nutrition plans and log entries store values either as raw numbers or as
// free-form text with unit suffixes and locale decimals ("150г", "12,5 g").
// Malformed input degrades silently to 0: statistics must never fail to
// display because of bad plan text.
func Parse(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		match := numberPattern.FindString(strings.ReplaceAll(v, ",", "."))
		if match == "" {
			return 0
		}
		n, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
