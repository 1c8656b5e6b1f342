package binding

import (
	"fmt"
	"strings"
)

// Mode is the direction in which a binding keeps a control and a view-model
// property synchronized.
type Mode int

const (
	// OneWay pushes view-model values onto the control only.
	OneWay Mode = iota
	// TwoWay synchronizes in both directions.
	TwoWay
	// Source writes control input into the view-model but never pushes the
	// view-model value back onto the control.
	Source
)

func (m Mode) String() string {
	switch m {
	case OneWay:
		return "one-way"
	case TwoWay:
		return "two-way"
	case Source:
		return "source"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Pushes reports whether view-model changes flow to the control.
func (m Mode) Pushes() bool {
	return m == OneWay || m == TwoWay
}

// Writes reports whether control input flows to the view-model.
func (m Mode) Writes() bool {
	return m == TwoWay || m == Source
}

// ParseMode accepts the names produced by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one-way", "oneway":
		return OneWay, nil
	case "two-way", "twoway":
		return TwoWay, nil
	case "source":
		return Source, nil
	default:
		return OneWay, fmt.Errorf("binding: unknown mode %q", s)
	}
}
