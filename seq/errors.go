package seq

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyConsumers is returned by Multiplexer.Consumer when more
	// handles are requested than Config.Consumers declared.
	ErrTooManyConsumers = errors.New("seq: too many consumers requested")

	// ErrConsumerClosed is returned by a consumer handle after Close.
	ErrConsumerClosed = errors.New("seq: consumer is closed")
)

// ConfigError reports an invalid Multiplexer configuration. It is returned
// synchronously at construction and never retried.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("seq: invalid config: %s: %s", e.Field, e.Reason)
}

// IsConfigError checks if an error is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
