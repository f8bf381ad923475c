package directive

import (
	"reflect"
	"strconv"

	"github.com/flosch/pongo2/v6"
)

// Lookup resolves a dotted variable path against a rendering context.
type Lookup interface {
	Lookup(path []string) (any, bool)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(path []string) (any, bool)

// Lookup implements Lookup.
func (fn LookupFunc) Lookup(path []string) (any, bool) {
	if fn == nil {
		return nil, false
	}
	return fn(path)
}

// ContextLookup resolves paths the way pongo2 resolves variables: the
// private context (tag provided values such as forloop) first, then the
// public one.
func ContextLookup(ctx *pongo2.ExecutionContext) Lookup {
	return LookupFunc(func(path []string) (any, bool) {
		if ctx == nil || len(path) == 0 {
			return nil, false
		}
		root, ok := ctx.Private[path[0]]
		if !ok {
			root, ok = ctx.Public[path[0]]
		}
		if !ok {
			return nil, false
		}
		return walk(root, path[1:])
	})
}

// MapLookup resolves paths against a plain map.
func MapLookup(data map[string]any) Lookup {
	return LookupFunc(func(path []string) (any, bool) {
		if len(path) == 0 {
			return nil, false
		}
		root, ok := data[path[0]]
		if !ok {
			return nil, false
		}
		return walk(root, path[1:])
	})
}

func walk(current any, path []string) (any, bool) {
	for _, segment := range path {
		next, ok := step(reflect.ValueOf(current), segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// step follows one path segment through methods, maps, struct fields and
// indexable values.
func step(v reflect.Value, segment string) (any, bool) {
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return nil, false
	}
	if method := v.MethodByName(segment); method.IsValid() {
		return callNiladic(method)
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		keyType := v.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, false
		}
		item := v.MapIndex(reflect.ValueOf(segment).Convert(keyType))
		if !item.IsValid() {
			return nil, false
		}
		return item.Interface(), true
	case reflect.Struct:
		field := v.FieldByName(segment)
		if !field.IsValid() || !field.CanInterface() {
			return nil, false
		}
		return field.Interface(), true
	case reflect.Slice, reflect.Array, reflect.String:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= v.Len() {
			return nil, false
		}
		return v.Index(idx).Interface(), true
	}
	return nil, false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func callNiladic(method reflect.Value) (any, bool) {
	typ := method.Type()
	if typ.NumIn() != 0 {
		return nil, false
	}
	switch typ.NumOut() {
	case 1:
		return method.Call(nil)[0].Interface(), true
	case 2:
		if !typ.Out(1).Implements(errorType) {
			return nil, false
		}
		out := method.Call(nil)
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, false
		}
		return out[0].Interface(), true
	}
	return nil, false
}
