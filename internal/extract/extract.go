// Package extract normalizes heterogeneous upstream JSON payloads into the
// canonical domain records. Upstream providers disagree on field spelling
// (camelCase and snake_case coexist, sometimes nested) and on numeric
// encoding (number vs numeric string, percent vs ratio), so every target
// field is resolved through an ordered list of known aliases and the first
// value that parses as a finite number wins. Extraction is best-effort with
// silent fallback: unresolvable fields stay nil and no error is ever raised
// for missing or malformed fields.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dexpath/internal/domain"
	"dexpath/internal/numeric"
)

// Payload is a decoded upstream JSON object.
type Payload map[string]any

// DecodePayload decodes a single JSON object payload.
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}

// DecodePayloadList decodes a JSON array of object payloads, as delivered by
// the pulse/list endpoint. A top-level object with a list under one of the
// known wrapper keys is accepted too.
func DecodePayloadList(data []byte) ([]Payload, error) {
	var arr []Payload
	if err := json.Unmarshal(data, &arr); err == nil {
		return arr, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode payload list: %w", err)
	}
	for _, key := range []string{"data", "tokens", "pairs", "results"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &arr); err == nil {
			return arr, nil
		}
	}
	return nil, fmt.Errorf("decode payload list: no token array found")
}

// unwrap descends through known single-object wrapper keys so that aliases
// can be written against the token object itself.
func unwrap(p Payload) Payload {
	for _, key := range []string{"data", "token", "attributes"} {
		if inner, ok := p[key].(map[string]any); ok {
			p = inner
		}
	}
	return p
}

// getPath resolves a dotted path ("baseToken.address") inside a decoded
// object. A path without dots is a plain key lookup.
func getPath(m map[string]any, path string) (any, bool) {
	if !strings.Contains(path, ".") {
		v, ok := m[path]
		return v, ok
	}
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// pickNumber returns the first alias resolving to a finite number, nil if none.
func pickNumber(m map[string]any, aliases ...string) *float64 {
	for _, alias := range aliases {
		v, ok := getPath(m, alias)
		if !ok {
			continue
		}
		if f, ok := numeric.ParseFinite(v); ok {
			return &f
		}
	}
	return nil
}

// pickString returns the first alias resolving to a non-empty string.
func pickString(m map[string]any, aliases ...string) string {
	for _, alias := range aliases {
		v, ok := getPath(m, alias)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// pickTimeMs returns the first alias resolving to a timestamp, as Unix ms.
// Accepted encodings: RFC3339 string, Unix seconds or Unix milliseconds
// (values below 1e12 are taken as seconds). Returns 0 when unresolved.
func pickTimeMs(m map[string]any, aliases ...string) int64 {
	for _, alias := range aliases {
		v, ok := getPath(m, alias)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				return ts.UnixMilli()
			}
		}
		if f, ok := numeric.ParseFinite(v); ok && f > 0 {
			if f < 1e12 {
				return int64(f * 1000)
			}
			return int64(f)
		}
	}
	return 0
}

// pickStrings returns the first alias resolving to a non-empty string list.
func pickStrings(m map[string]any, aliases ...string) []string {
	for _, alias := range aliases {
		v, ok := getPath(m, alias)
		if !ok {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		var out []string
		for _, item := range arr {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// ParseRugcheckReport decodes a rugcheck report payload. The report shape is
// stable across the upstream's versions, so it is unmarshalled directly
// rather than going through alias resolution.
func ParseRugcheckReport(data []byte) (*domain.RugcheckReport, error) {
	var report domain.RugcheckReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse rugcheck report: %w", err)
	}
	return &report, nil
}
