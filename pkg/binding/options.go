package binding

import (
	"time"

	"github.com/rs/zerolog"
)

// Option customises a binding at construction.
type Option func(*options)

type options struct {
	mode     Mode
	debounce time.Duration
	log      zerolog.Logger
	name     string

	// Typed options are stored untyped and checked against the binding's
	// type parameters by the constructor.
	converter     any
	display       any
	equal         any
	factory       any
	itemsProperty string
}

func buildOptions(opts []Option) *options {
	o := &options{mode: OneWay, log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithMode selects the binding direction. The default is OneWay.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithDebounce delays control-to-view-model writes until input has been
// quiet for d. Each new input cancels the pending write.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithLogger sets the logger used for conversion and disposal failures.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithName labels bindings that have no property path, such as command
// bindings, in logs.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithConverter overrides the default text conversion for V.
func WithConverter[V any](c Converter[V]) Option {
	return func(o *options) {
		o.converter = c
	}
}

// WithDisplay sets how a selector renders an item with the default adapter.
func WithDisplay[T any](fn func(T) string) Option {
	return func(o *options) {
		o.display = fn
	}
}

// WithEqual sets the equality a selector uses to find the selected item.
func WithEqual[T any](fn func(a, b T) bool) Option {
	return func(o *options) {
		o.equal = fn
	}
}

// WithAdapterFactory makes a selector rebuild its adapter through factory on
// every items refresh instead of using the default string adapter.
func WithAdapterFactory[T any](factory AdapterFactory[T]) Option {
	return func(o *options) {
		o.factory = factory
	}
}

// WithItemsProperty names the view-model property whose change re-evaluates
// a selector's items getter.
func WithItemsProperty(name string) Option {
	return func(o *options) {
		o.itemsProperty = name
	}
}
