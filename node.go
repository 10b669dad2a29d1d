package untree

import (
	"encoding/json"
	"reflect"
)

// kindOf names the tree kind of a node for error messages.
func kindOf(node any) string {
	switch node.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "text"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case json.Number:
		return "number"
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	}

	if isNil(node) {
		return "null"
	}

	switch reflect.ValueOf(node).Kind() {
	case reflect.Map:
		return "mapping"
	case reflect.Slice, reflect.Array:
		return "sequence"
	default:
		return reflect.TypeOf(node).String()
	}
}

// isNil reports whether node is the null marker. A typed nil stored in the
// tree, e.g. a nil slice or a nil pointer inside an any, counts as null.
func isNil(node any) bool {
	if node == nil {
		return true
	}

	value := reflect.ValueOf(node)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}

// asMapping interprets node as a mapping. Trees usually hold mappings as
// map[string]any, but any string keyed go map is widened here so that hand
// built trees work too.
func asMapping(node any) (map[string]any, bool) {
	if values, ok := node.(map[string]any); ok {
		return values, true
	}

	value := reflect.ValueOf(node)
	if value.Kind() != reflect.Map || value.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	values := make(map[string]any, value.Len())

	entries := value.MapRange()
	for entries.Next() {
		values[entries.Key().String()] = entries.Value().Interface()
	}

	return values, true
}

// asSequence interprets node as a sequence, widening arbitrary go slices
// and arrays the same way asMapping widens maps. Text and raw bytes are
// scalars and do not count as sequences.
func asSequence(node any) ([]any, bool) {
	switch value := node.(type) {
	case []any:
		return value, true
	case []byte, string:
		return nil, false
	}

	value := reflect.ValueOf(node)
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		return nil, false
	}

	elements := make([]any, value.Len())
	for idx := range elements {
		elements[idx] = value.Index(idx).Interface()
	}

	return elements, true
}
