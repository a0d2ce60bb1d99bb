package datatable

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Lookup returns the value stored under key. Keys that are not present
// verbatim are resolved as dotted paths into nested maps ("address.city").
func Lookup(r Record, key string) any {
	if v, ok := r[key]; ok {
		return v
	}
	if !strings.Contains(key, ".") {
		return nil
	}

	var cur any = map[string]any(r)
	for part := range strings.SplitSeq(key, ".") {
		switch m := cur.(type) {
		case map[string]any:
			cur = m[part]
		case Record:
			cur = m[part]
		default:
			return nil
		}
	}
	return cur
}

// SortRecords sorts records in place by key. The sort is stable so equal
// values keep their relative order.
func SortRecords(records []Record, key string, dir Direction) {
	slices.SortStableFunc(records, func(a, b Record) int {
		c := Compare(Lookup(a, key), Lookup(b, key))
		if dir == Descending {
			return -c
		}
		return c
	})
}

type valueRank int

const (
	rankNil valueRank = iota
	rankBool
	rankNumber
	rankTime
	rankString
	rankOther
)

// Compare orders two scalars: numbers numerically, strings lexically,
// booleans false before true, times chronologically. Values of different
// kinds are ordered nil < bool < number < time < string < other.
func Compare(a, b any) int {
	ra, rb := rankOf(a), rankOf(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch ra {
	case rankNil:
		return 0
	case rankBool:
		return cmp.Compare(boolInt(a.(bool)), boolInt(b.(bool)))
	case rankNumber:
		return cmp.Compare(toFloat(a), toFloat(b))
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	case rankString:
		return strings.Compare(a.(string), b.(string))
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func rankOf(v any) valueRank {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case json.Number:
		return rankNumber
	case time.Time:
		return rankTime
	case string:
		return rankString
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rankNumber
	}
	return rankOther
}

func toFloat(v any) float64 {
	if n, ok := v.(json.Number); ok {
		f, _ := strconv.ParseFloat(n.String(), 64)
		return f
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int())
	case rv.CanUint():
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
