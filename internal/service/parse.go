package service

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// lenientInt reads a form or JSON value as an int. Empty, unparseable,
// fractional, non-finite and out of int32 range values are nil rather than
// errors. "8.0" reads as 8.
func lenientInt(v any) *int {
	if isBlank(v) {
		return nil
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !isFinite(f) || f != math.Trunc(f) {
		return nil
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}

// lenientFloat is lenientInt for decimals. NaN and the infinities are nil.
func lenientFloat(v any) *float64 {
	if isBlank(v) {
		return nil
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !isFinite(f) {
		return nil
	}
	return &f
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
