package binding

import (
	"reflect"
	"unicode/utf8"
)

// strategy is the control-specific half of a property binding. It is chosen
// once, when the binding is constructed.
type strategy[V any] interface {
	// push shows value on the control.
	push(value V)
	// listen reports user input; parse converts it when the write commits.
	listen(fn func(raw string, parse func() (V, error))) (unsubscribe func())
	acceptsInput() bool
}

func newStrategy[V any](property string, ctl any, conv Converter[V]) (strategy[V], error) {
	switch c := ctl.(type) {
	case nil:
		return nil, configErrorf(property, "nil control")
	case TextControl:
		return &textStrategy[V]{ctl: c, conv: conv}, nil
	case ToggleControl:
		if reflect.TypeFor[V]() != reflect.TypeFor[bool]() {
			return nil, configErrorf(property, "toggle controls bind bool properties, not %s", reflect.TypeFor[V]())
		}
		return &toggleStrategy[V]{ctl: c}, nil
	case Display:
		return &displayStrategy[V]{ctl: c, conv: conv}, nil
	default:
		return nil, configErrorf(property, "unsupported control %T", ctl)
	}
}

type textStrategy[V any] struct {
	ctl  TextControl
	conv Converter[V]
}

func (s *textStrategy[V]) push(value V) {
	text := s.conv.Format(value)
	if s.ctl.Text() == text {
		return
	}
	start, end := s.ctl.Selection()
	s.ctl.SetText(text)
	n := utf8.RuneCountInString(text)
	s.ctl.SetSelection(clamp(start, 0, n), clamp(end, 0, n))
}

func (s *textStrategy[V]) listen(fn func(string, func() (V, error))) func() {
	return s.ctl.OnInput(func(text string) {
		fn(text, func() (V, error) { return s.conv.Parse(text) })
	})
}

func (s *textStrategy[V]) acceptsInput() bool { return true }

type toggleStrategy[V any] struct {
	ctl ToggleControl
}

func (s *toggleStrategy[V]) push(value V) {
	checked := any(value).(bool)
	if s.ctl.Checked() == checked {
		return
	}
	s.ctl.SetChecked(checked)
}

func (s *toggleStrategy[V]) listen(fn func(string, func() (V, error))) func() {
	return s.ctl.OnToggle(func(checked bool) {
		raw := "false"
		if checked {
			raw = "true"
		}
		fn(raw, func() (V, error) { return any(checked).(V), nil })
	})
}

func (s *toggleStrategy[V]) acceptsInput() bool { return true }

type displayStrategy[V any] struct {
	ctl  Display
	conv Converter[V]
}

func (s *displayStrategy[V]) push(value V) {
	text := s.conv.Format(value)
	if s.ctl.Text() == text {
		return
	}
	s.ctl.SetText(text)
}

func (s *displayStrategy[V]) listen(func(string, func() (V, error))) func() {
	return nil
}

func (s *displayStrategy[V]) acceptsInput() bool { return false }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
