package binding

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// Accessor reads and optionally writes one property of a view-model. Set is
// nil for read-only properties.
type Accessor[S, V any] struct {
	Name string
	Get  func(S) V
	Set  func(S, V)
}

// ReadOnly reports whether the accessor lacks a setter.
func (a Accessor[S, V]) ReadOnly() bool {
	return a.Set == nil
}

// Func builds an accessor from typed closures. set may be nil.
func Func[S, V any](name string, get func(S) V, set func(S, V)) Accessor[S, V] {
	return Accessor[S, V]{Name: name, Get: get, Set: set}
}

// Notifier is a view-model that can announce its own property changes.
type Notifier interface {
	Notify(name string)
}

// Notifying wraps acc so every write is followed by a change notification
// for acc.Name. Compiled accessors write fields directly and need it when
// other parts of the view-model react to the property.
func Notifying[S Notifier, V any](acc Accessor[S, V]) Accessor[S, V] {
	if acc.Set == nil {
		return acc
	}
	set := acc.Set
	acc.Set = func(s S, v V) {
		set(s, v)
		s.Notify(acc.Name)
	}
	return acc
}

type planKey struct {
	root reflect.Type
	path string
}

// plan is a resolved field path: one struct field index per segment, with
// pointer indirections followed between segments.
type plan struct {
	fields   []int
	leaf     reflect.Type
	writable bool
}

var plans sync.Map // planKey -> *plan

// Compile turns a dotted field path such as "Draft.Amount" into an accessor
// over S. Only direct member access is accepted; method calls, index or
// arithmetic expressions, unexported or unknown fields, and leaf types other
// than V are configuration errors. The accessor can write only when S is a
// pointer. Resolved paths are cached per root type.
func Compile[S, V any](path string) (Accessor[S, V], error) {
	root := reflect.TypeFor[S]()
	want := reflect.TypeFor[V]()

	p, err := resolve(root, path)
	if err != nil {
		return Accessor[S, V]{}, err
	}
	if p.leaf != want {
		return Accessor[S, V]{}, configErrorf(path, "field is %s, not %s", p.leaf, want)
	}

	acc := Accessor[S, V]{
		Name: path,
		Get: func(s S) V {
			var out V
			if v, ok := walk(reflect.ValueOf(s), p.fields, false); ok {
				reflect.ValueOf(&out).Elem().Set(v)
			}
			return out
		},
	}
	if p.writable {
		acc.Set = func(s S, value V) {
			v, ok := walk(reflect.ValueOf(s), p.fields, true)
			if !ok {
				return
			}
			rv := reflect.ValueOf(&value).Elem()
			v.Set(rv)
		}
	}
	return acc, nil
}

// MustCompile is Compile for package-level accessors; it panics on a
// configuration error.
func MustCompile[S, V any](path string) Accessor[S, V] {
	acc, err := Compile[S, V](path)
	if err != nil {
		panic(err)
	}
	return acc
}

func resolve(root reflect.Type, path string) (*plan, error) {
	key := planKey{root: root, path: path}
	if cached, ok := plans.Load(key); ok {
		return cached.(*plan), nil
	}

	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	t := root
	p := &plan{writable: root.Kind() == reflect.Pointer}
	for _, seg := range segments {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return nil, configErrorf(path, "%s is not a struct, cannot access %q", t, seg)
		}
		f, ok := t.FieldByName(seg)
		if !ok {
			return nil, configErrorf(path, "%s has no field %q", t, seg)
		}
		if !f.IsExported() {
			return nil, configErrorf(path, "field %q is not exported", seg)
		}
		if len(f.Index) != 1 {
			return nil, configErrorf(path, "field %q is promoted; name the embedded struct", seg)
		}
		p.fields = append(p.fields, f.Index[0])
		t = f.Type
	}
	p.leaf = t

	actual, _ := plans.LoadOrStore(key, p)
	return actual.(*plan), nil
}

func splitPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, configErrorf(path, "empty property path")
	}
	if strings.ContainsAny(path, "()") {
		return nil, configErrorf(path, "method calls are not member access")
	}
	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if !isIdentifier(seg) {
			return nil, configErrorf(path, "%q is not a simple member access", seg)
		}
	}
	return segments, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// walk follows fields from v. With alloc set, nil intermediate pointers are
// allocated so a write can land; otherwise a nil pointer ends the walk.
func walk(v reflect.Value, fields []int, alloc bool) (reflect.Value, bool) {
	for _, idx := range fields {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc || !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(idx)
	}
	if alloc && !v.CanSet() {
		return reflect.Value{}, false
	}
	return v, true
}
