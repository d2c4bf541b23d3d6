package domain

import (
	"errors"
	"fmt"
)

// ConfigurationError is returned at provider construction time when a
// required setting is missing. It is never produced per call.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s is required", e.Key)
}

// IsConfigurationError checks if err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
