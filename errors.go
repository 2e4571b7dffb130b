package numinput

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel matched by every *ConfigurationError.
var ErrInvalidConfig = errors.New("numinput: invalid configuration")

// ConfigurationError is returned by New when the configuration is unusable.
// Configuration is never corrected silently.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("numinput: invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfig
}

// IsConfigurationError checks if err is a configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
