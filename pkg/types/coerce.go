package types

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// AsInt coerces a raw value to an integer.
//
// Integers pass through, reals are truncated toward zero, booleans map to
// 0/1 and strings must hold a base-10 integer literal (surrounding
// whitespace allowed). A string holding a real ("7100.5") is not an integer.
func AsInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		t := math.Trunc(x)
		if t >= math.MaxInt64 || t < math.MinInt64 {
			return 0, false
		}
		return int64(t), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsFloat coerces a raw value to a real number.
//
// Numbers and booleans convert directly. Strings must hold a decimal real
// literal; "inf" and "nan" spellings are accepted and overflowing literals
// become ±Inf.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if isHexLiteral(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return f, true
			}
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}
