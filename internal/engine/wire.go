package engine

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FallbackReason replaces reason lists that arrive as unparsable text.
const FallbackReason = "explanations unavailable"

// StringList decodes a field the engine delivers either as a JSON array of
// strings or as a JSON-encoded string holding such an array. Unparsable input
// degrades to a single fallback entry instead of failing the whole payload.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = StringList{}
		return nil
	}

	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		*l = StringList{FallbackReason}
		return nil
	}

	var nested []string
	if err := json.Unmarshal([]byte(encoded), &nested); err == nil {
		*l = nested
		return nil
	}
	var scalar any
	if err := json.Unmarshal([]byte(encoded), &scalar); err == nil {
		*l = StringList{stringify(scalar)}
		return nil
	}
	*l = StringList{FallbackReason}
	return nil
}

// ContextMap decodes a key/value mapping the engine delivers either as a JSON
// object or as a JSON-encoded string holding one. Unparsable input is kept
// verbatim under a "raw" key.
type ContextMap map[string]any

func (m *ContextMap) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = ContextMap{}
		return nil
	}

	var direct map[string]any
	if err := json.Unmarshal(data, &direct); err == nil {
		*m = direct
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		*m = ContextMap{"raw": string(data)}
		return nil
	}
	var nested map[string]any
	if err := json.Unmarshal([]byte(encoded), &nested); err == nil {
		*m = nested
		return nil
	}
	*m = ContextMap{"raw": encoded}
	return nil
}

// listOrEmpty decodes a JSON array, degrading null or any non-array value to
// an empty slice instead of failing the whole payload.
func listOrEmpty[T any](data []byte) []T {
	var out []T
	if err := json.Unmarshal(bytes.TrimSpace(data), &out); err != nil || out == nil {
		return []T{}
	}
	return out
}

// RecommendationList decodes the engine's recommendation array. A field that
// arrives as something other than an array renders as "no recommendations"
// rather than failing the session.
type RecommendationList []Recommendation

func (l *RecommendationList) UnmarshalJSON(data []byte) error {
	*l = listOrEmpty[Recommendation](data)
	return nil
}

// ExplanationList is the tolerant counterpart for the explanations array.
type ExplanationList []Explanation

func (l *ExplanationList) UnmarshalJSON(data []byte) error {
	*l = listOrEmpty[Explanation](data)
	return nil
}

// RuleLogList is the tolerant counterpart for the rule execution log array.
type RuleLogList []RuleLog

func (l *RuleLogList) UnmarshalJSON(data []byte) error {
	*l = listOrEmpty[RuleLog](data)
	return nil
}

// LooseStrings decodes a plain string array, degrading malformed input to an
// empty list. Unlike StringList it never injects the fallback reason: the
// chain and audit fields just come back empty when unusable.
type LooseStrings []string

func (l *LooseStrings) UnmarshalJSON(data []byte) error {
	*l = listOrEmpty[string](data)
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return FallbackReason
		}
		return string(data)
	}
}
