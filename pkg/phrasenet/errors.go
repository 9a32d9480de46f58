package phrasenet

import "fmt"

// ConfigError reports a rejected configuration parameter. It is returned
// before any linking work starts so the transport layer can map it to a
// client error.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// InputError reports unusable input text. Zero linking results over valid
// text are not an InputError.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

// ServiceError wraps a failure of an external collaborator, currently the
// annotation engine. The wrapped error is propagated untouched; the core
// never retries or falls back to a different engine.
type ServiceError struct {
	Service string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service error: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
