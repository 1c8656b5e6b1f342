package observable

import "reflect"

// Equal compares two values the way selection lookups and collection
// removals expect. Pointers, maps, chans and funcs compare by reference.
// Values with an Equal(T) bool method (decimal.Decimal, time.Time) use it.
// Otherwise values whose dynamic contents are comparable use ==, and the
// rest compare deeply.
func Equal[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	t := reflect.TypeOf(av)
	if t != reflect.TypeOf(bv) {
		return false
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		return av == bv
	case reflect.Map, reflect.Func, reflect.Chan:
		return reflect.ValueOf(av).Pointer() == reflect.ValueOf(bv).Pointer()
	}
	if eq, ok := av.(interface{ Equal(T) bool }); ok {
		return eq.Equal(b)
	}
	if reflect.ValueOf(av).Comparable() && reflect.ValueOf(bv).Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}

// IndexOf returns the position of target in items, or -1.
func IndexOf[T any](items []T, target T, eq func(a, b T) bool) int {
	if eq == nil {
		eq = Equal[T]
	}
	for i := range items {
		if eq(items[i], target) {
			return i
		}
	}
	return -1
}
