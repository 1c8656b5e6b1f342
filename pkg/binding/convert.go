package binding

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the textual form of time.Time values in text controls.
const DateLayout = "2006-01-02"

// Converter maps a property value to and from the text a control displays.
type Converter[V any] struct {
	Format func(V) string
	Parse  func(string) (V, error)
}

var (
	decimalType  = reflect.TypeFor[decimal.Decimal]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// DefaultConverter returns the built-in converter for V. Strings pass through
// unchanged; empty input parses to the zero value for value types and to nil
// for pointer types.
func DefaultConverter[V any]() (Converter[V], bool) {
	t := reflect.TypeFor[V]()
	c, ok := converterFor(t)
	if !ok {
		return Converter[V]{}, false
	}
	return Converter[V]{
		Format: func(v V) string {
			return c.format(reflect.ValueOf(&v).Elem())
		},
		Parse: func(s string) (V, error) {
			rv, err := c.parse(s)
			if err != nil {
				var zero V
				return zero, err
			}
			return rv.Interface().(V), nil
		},
	}, true
}

type valueConverter struct {
	format func(reflect.Value) string
	parse  func(string) (reflect.Value, error)
}

func converterFor(t reflect.Type) (valueConverter, bool) {
	switch t {
	case decimalType:
		return valueConverter{
			format: func(v reflect.Value) string {
				return v.Interface().(decimal.Decimal).String()
			},
			parse: func(s string) (reflect.Value, error) {
				s = strings.TrimSpace(s)
				if s == "" {
					return reflect.ValueOf(decimal.Zero), nil
				}
				// Accept a decimal comma as well as a dot.
				d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
				if err != nil {
					return reflect.Value{}, fmt.Errorf("parse decimal %q: %w", s, err)
				}
				return reflect.ValueOf(d), nil
			},
		}, true
	case timeType:
		return valueConverter{
			format: func(v reflect.Value) string {
				ts := v.Interface().(time.Time)
				if ts.IsZero() {
					return ""
				}
				return ts.Format(DateLayout)
			},
			parse: func(s string) (reflect.Value, error) {
				s = strings.TrimSpace(s)
				if s == "" {
					return reflect.ValueOf(time.Time{}), nil
				}
				ts, err := time.Parse(DateLayout, s)
				if err != nil {
					return reflect.Value{}, fmt.Errorf("parse date %q: %w", s, err)
				}
				return reflect.ValueOf(ts), nil
			},
		}, true
	case durationType:
		return valueConverter{
			format: func(v reflect.Value) string {
				return time.Duration(v.Int()).String()
			},
			parse: func(s string) (reflect.Value, error) {
				s = strings.TrimSpace(s)
				if s == "" {
					return reflect.Zero(t), nil
				}
				d, err := time.ParseDuration(s)
				if err != nil {
					return reflect.Value{}, err
				}
				return reflect.ValueOf(d), nil
			},
		}, true
	}

	switch t.Kind() {
	case reflect.String:
		return valueConverter{
			format: func(v reflect.Value) string { return v.String() },
			parse: func(s string) (reflect.Value, error) {
				return reflect.ValueOf(s).Convert(t), nil
			},
		}, true
	case reflect.Bool:
		return valueConverter{
			format: func(v reflect.Value) string { return strconv.FormatBool(v.Bool()) },
			parse: func(s string) (reflect.Value, error) {
				out := reflect.New(t).Elem()
				s = strings.TrimSpace(s)
				if s == "" {
					return out, nil
				}
				b, err := strconv.ParseBool(s)
				if err != nil {
					return reflect.Value{}, err
				}
				out.SetBool(b)
				return out, nil
			},
		}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return valueConverter{
			format: func(v reflect.Value) string { return strconv.FormatInt(v.Int(), 10) },
			parse: func(s string) (reflect.Value, error) {
				out := reflect.New(t).Elem()
				s = strings.TrimSpace(s)
				if s == "" {
					return out, nil
				}
				n, err := strconv.ParseInt(s, 10, t.Bits())
				if err != nil {
					return reflect.Value{}, err
				}
				out.SetInt(n)
				return out, nil
			},
		}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return valueConverter{
			format: func(v reflect.Value) string { return strconv.FormatUint(v.Uint(), 10) },
			parse: func(s string) (reflect.Value, error) {
				out := reflect.New(t).Elem()
				s = strings.TrimSpace(s)
				if s == "" {
					return out, nil
				}
				n, err := strconv.ParseUint(s, 10, t.Bits())
				if err != nil {
					return reflect.Value{}, err
				}
				out.SetUint(n)
				return out, nil
			},
		}, true
	case reflect.Float32, reflect.Float64:
		return valueConverter{
			format: func(v reflect.Value) string {
				return strconv.FormatFloat(v.Float(), 'f', -1, t.Bits())
			},
			parse: func(s string) (reflect.Value, error) {
				out := reflect.New(t).Elem()
				s = strings.TrimSpace(s)
				if s == "" {
					return out, nil
				}
				f, err := strconv.ParseFloat(s, t.Bits())
				if err != nil {
					return reflect.Value{}, err
				}
				out.SetFloat(f)
				return out, nil
			},
		}, true
	case reflect.Pointer:
		elem, ok := converterFor(t.Elem())
		if !ok {
			return valueConverter{}, false
		}
		return valueConverter{
			format: func(v reflect.Value) string {
				if v.IsNil() {
					return ""
				}
				return elem.format(v.Elem())
			},
			parse: func(s string) (reflect.Value, error) {
				if strings.TrimSpace(s) == "" {
					return reflect.Zero(t), nil
				}
				ev, err := elem.parse(s)
				if err != nil {
					return reflect.Value{}, err
				}
				p := reflect.New(t.Elem())
				p.Elem().Set(ev)
				return p, nil
			},
		}, true
	}
	return valueConverter{}, false
}
