package solo

import (
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// firstNonEmptyArray returns the first path in 'paths' that holds a non-empty array
func firstNonEmptyArray(obj gjson.Result, paths ...string) ([]gjson.Result, bool) {
	for _, p := range paths {
		v := obj.Get(p)
		if v.IsArray() {
			if items := v.Array(); len(items) != 0 {
				return items, true
			}
		}
	}
	return nil, false
}

// firstInt returns the first field in 'names' that holds an integer.
// Integral floats (eg 3.0) and integer strings (eg "3") are accepted.
func firstInt(obj gjson.Result, names ...string) (int, bool) {
	for _, n := range names {
		if v, ok := asInt(obj.Get(n)); ok {
			return v, true
		}
	}
	return 0, false
}

func asInt(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		if v.Num != math.Trunc(v.Num) || math.IsInf(v.Num, 0) {
			return 0, false
		}
		return int(v.Num), true
	case gjson.String:
		i, err := strconv.Atoi(v.Str)
		return i, err == nil
	}
	return 0, false
}

// numbers returns the values of 'names', if all of them are numbers
func numbers(obj gjson.Result, names ...string) ([]float64, bool) {
	vals := make([]float64, 0, len(names))
	for _, n := range names {
		v := obj.Get(n)
		if v.Type != gjson.Number {
			return nil, false
		}
		vals = append(vals, v.Num)
	}
	return vals, true
}

// pair returns a two element numeric array, such as [10, 20]
func pair(obj gjson.Result, name string) (float64, float64, bool) {
	v := obj.Get(name)
	if !v.IsArray() {
		return 0, 0, false
	}
	items := v.Array()
	if len(items) != 2 || items[0].Type != gjson.Number || items[1].Type != gjson.Number {
		return 0, 0, false
	}
	return items[0].Num, items[1].Num, true
}
