package binding

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every error a binding constructor returns.
// Configuration errors are programming mistakes, such as a malformed
// property path or a writable mode on a read-only accessor.
var ErrConfiguration = errors.New("binding: configuration error")

// ConfigError describes a configuration error for one property.
type ConfigError struct {
	Property string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Property == "" {
		return "binding: " + e.Reason
	}
	return fmt.Sprintf("binding: %s: %s", e.Property, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) hold.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErrorf(property, format string, args ...any) error {
	return &ConfigError{Property: property, Reason: fmt.Sprintf(format, args...)}
}
