package decorator

import "reflect"

// derefType returns the unqualified type name of v, unwrapping one level of
// pointer indirection, for use as a stable metric/span/log label.
func derefType(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "unknown"
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}
