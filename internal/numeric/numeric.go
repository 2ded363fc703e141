// Package numeric centralizes the numeric conventions shared by every
// scoring component: percent-vs-ratio normalization, clamping, range
// normalization and lenient parsing of upstream values.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizePct returns v in percent form. Upstream payloads deliver
// percentage-like fields either as a 0-1 ratio or as a 0-100 percent;
// any value > 1 is taken as already being a percent.
func NormalizePct(v float64) float64 {
	if v > 1 {
		return v
	}
	return v * 100
}

// NormalizeRatio returns v in 0-1 ratio form, the inverse convention of
// NormalizePct: any value > 1 is taken as a percent and divided by 100.
func NormalizeRatio(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Norm maps v into [0, 1] linearly over [lo, hi], clamping outside values.
func Norm(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return Clamp01((v - lo) / (hi - lo))
}

// Value returns *p, or 0 when p is nil.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// NonNegative returns *p clamped to >= 0, or 0 when p is nil.
func NonNegative(p *float64) float64 {
	v := Value(p)
	if v < 0 {
		return 0
	}
	return v
}

// ParseFinite attempts to read a finite float64 out of an arbitrary decoded
// JSON value. Accepted forms: float64, integer types, json.Number and
// numeric strings (with surrounding whitespace tolerated). NaN and infinities
// are rejected.
func ParseFinite(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, isFinite(x)
	case float32:
		return float64(x), isFinite(float64(x))
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil && isFinite(f)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil && isFinite(f)
	default:
		return 0, false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
