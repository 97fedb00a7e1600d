package criteria

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// toFloat attempts the "numeric-preferred" half of the comparison coercion
// policy: a clean parse to float64, or failure for anything that isn't
// numeric-looking (including nil).
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// toDisplayString renders v the way the string-fallback comparison path
// does: the natural textual form of scalars. compare uses it when either
// operand fails numeric coercion (and always for MATCH and LIKE); the
// collection operators use it for every element.
func toDisplayString(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// asCollection reports whether v is an ordered sequence of values, and
// returns it as a []any. Attribute values decoded from YAML naturally
// surface as []any; this also accepts typed slices via reflection so
// collections built programmatically (e.g. by tests) work uniformly.
func asCollection(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// truthy implements the standard truthiness coercion used on the final RPN
// stack value: nil and "empty" values are false, everything else is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if coll, ok := asCollection(v); ok {
		return len(coll) > 0
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return true
}
