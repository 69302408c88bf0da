package sources

import (
	"fmt"

	"feed-dashboard/models"
)

// ShapeError reports a JSON document that decoded fine but lacks the
// structure a normalizer needs.
type ShapeError struct {
	Source string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected %s payload: %s", e.Source, e.Reason)
}

func shapeErr(source, format string, args ...interface{}) error {
	return &ShapeError{Source: source, Reason: fmt.Sprintf(format, args...)}
}

// field helpers over encoding/json's generic decoding

func asObject(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asArray(v interface{}) ([]interface{}, bool) {
	a, ok := v.([]interface{})
	return a, ok
}

// optString returns def for a missing or null key, and fails on any other
// non-string value.
func optString(m map[string]interface{}, key, def string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return def, true
	}
	s, ok := v.(string)
	return s, ok
}

// optNumber returns nil for a missing or null key.
func optNumber(m map[string]interface{}, key string) (models.Value, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, true
	}
	f, ok := v.(float64)
	if !ok {
		return nil, false
	}
	return f, true
}

func reqString(m map[string]interface{}, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

func reqNumber(m map[string]interface{}, key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}
