package hybrid

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// fieldIndex maps json field names to struct field index paths, including
// fields promoted from embedded structs.
type fieldIndex map[string][]int

var indexCache sync.Map // reflect.Type -> fieldIndex

func indexOf(t reflect.Type) fieldIndex {
	if cached, ok := indexCache.Load(t); ok {
		return cached.(fieldIndex)
	}
	idx := fieldIndex{}
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = f.Index
		}
	}
	indexCache.Store(t, idx)
	return idx
}

// lookup returns the value of the json field name on v
func (idx fieldIndex) lookup(v reflect.Value, name string) (reflect.Value, bool) {
	path, ok := idx[name]
	if !ok {
		return reflect.Value{}, false
	}
	return v.FieldByIndex(path), true
}

// equal compares a field with a filter value by their printed form so that
// typed strings such as order statuses match plain strings.
func equal(field reflect.Value, want any) bool {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return want == nil
		}
		field = field.Elem()
	}
	return fmt.Sprint(field.Interface()) == fmt.Sprint(want)
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// compare orders two values of the same field. Nil pointers sort first.
func compare(a, b reflect.Value) int {
	if a.Kind() == reflect.Pointer {
		switch {
		case a.IsNil() && b.IsNil():
			return 0
		case a.IsNil():
			return -1
		case b.IsNil():
			return 1
		}
		a, b = a.Elem(), b.Elem()
	}

	switch a.Type() {
	case timeType:
		return a.Interface().(time.Time).Compare(b.Interface().(time.Time))
	case decimalType:
		return a.Interface().(decimal.Decimal).Cmp(b.Interface().(decimal.Decimal))
	}

	switch a.Kind() {
	case reflect.String:
		return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case !a.Bool():
			return -1
		default:
			return 1
		}
	}
	return 0
}
