package sanitizer

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Enum returns input when it is a member of valid, def otherwise.
func Enum[T comparable](input T, valid []T, def T) T {
	if slices.Contains(valid, input) {
		return input
	}
	return def
}

// EnumFold is Enum for string enums, ignoring surrounding space and case.
// Non-string input yields def.
func EnumFold[T ~string](input any, valid []T, def T) T {
	s, ok := input.(string)
	if !ok {
		if t, isT := input.(T); isT {
			s = string(t)
		} else {
			return def
		}
	}
	s = strings.TrimSpace(s)
	for _, v := range valid {
		if strings.EqualFold(s, string(v)) {
			return v
		}
	}
	return def
}

// ClampInt converts input to an integer and bounds it to [lo, hi].
// Non-numeric or missing input yields def.
func ClampInt(input any, lo, hi, def int) int {
	n, ok := toInt(input)
	if !ok {
		return def
	}
	return max(lo, min(hi, n))
}

func toInt(input any) (int, bool) {
	switch v := input.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return floatToInt(v)
	case float32:
		return floatToInt(float64(v))
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt(f)
		}
	case string:
		s := strings.TrimSpace(v)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f)
		}
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32, true
	case f < math.MinInt32:
		return math.MinInt32, true
	}
	return int(math.Trunc(f)), true
}

// Bool is true unless input is explicitly false.
func Bool(input any) bool {
	switch v := input.(type) {
	case bool:
		return v
	case *bool:
		return v == nil || *v
	}
	return true
}
