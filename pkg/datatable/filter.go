package datatable

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"
)

// Flatten returns every leaf scalar reachable from v, descending into maps
// and slices.
func Flatten(v any) []any {
	var out []any
	flattenInto(v, &out)
	return out
}

func flattenInto(v any, out *[]any) {
	switch t := v.(type) {
	case nil:
		*out = append(*out, nil)
	case Record:
		for _, val := range t {
			flattenInto(val, out)
		}
	case map[string]any:
		for _, val := range t {
			flattenInto(val, out)
		}
	case []any:
		for _, val := range t {
			flattenInto(val, out)
		}
	case string, bool, json.Number, float64, int, int64:
		*out = append(*out, t)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Map:
			iter := rv.MapRange()
			for iter.Next() {
				flattenInto(iter.Value().Interface(), out)
			}
		case reflect.Slice, reflect.Array:
			if rv.Type().Elem().Kind() == reflect.Uint8 {
				*out = append(*out, v)
				return
			}
			for i := range rv.Len() {
				flattenInto(rv.Index(i).Interface(), out)
			}
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				*out = append(*out, nil)
				return
			}
			flattenInto(rv.Elem().Interface(), out)
		default:
			*out = append(*out, v)
		}
	}
}

// Filter returns the records with at least one leaf value containing term,
// compared with Unicode case folding. A blank term returns a copy of all
// records. The input slice is never modified.
func Filter(records []Record, term string) []Record {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	if needle == "" {
		return append([]Record(nil), records...)
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if matches(r, needle, fold) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether any leaf value of r contains term, ignoring case.
func Matches(r Record, term string) bool {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	return needle == "" || matches(r, needle, fold)
}

func matches(r Record, needle string, fold cases.Caser) bool {
	for _, v := range Flatten(r) {
		if strings.Contains(fold.String(stringify(v)), needle) {
			return true
		}
	}
	return false
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
