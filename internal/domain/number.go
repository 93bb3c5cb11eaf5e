package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NumberOr coerces v to a finite number, returning fallback when it cannot.
// For strings only the first numeric run counts (see numericRun); its
// grouping separators are dropped before parsing. So "1,234,567",
// "1,234,567 (2020 est)" and "$1,000.50" parse as 1234567, 1234567 and
// 1000.5; "390 km2" is 390 and "1.5e6" is 1.5.
func NumberOr(v any, fallback float64) float64 {
	if n, ok := parseNumber(v); ok {
		return n
	}
	return fallback
}

// OptionalNumber is NumberOr with a null fallback.
func OptionalNumber(v any) *float64 {
	if n, ok := parseNumber(v); ok {
		return &n
	}
	return nil
}

func parseNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case int32:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, numericRun(x))
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// numericRun returns the first number-like run of s. It starts at the first
// digit, extended back over a directly preceding '-' or '.', and continues
// through digits, dots, minus signs and the grouping separators ',', '_',
// '\'' and spaces. It stops at any other rune, which drops a trailing unit
// or annotation along with an exponent.
func numericRun(s string) string {
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return ""
	}
	for start > 0 && (s[start-1] == '-' || s[start-1] == '.') {
		start--
	}
	end := strings.IndexFunc(s[start:], func(r rune) bool {
		return !unicode.IsDigit(r) && !strings.ContainsRune(".-,_'", r) && !unicode.IsSpace(r)
	})
	if end < 0 {
		return s[start:]
	}
	return s[start : start+end]
}
