package arcade

import (
	"errors"
	"strings"
)

var (
	ErrInvalidPath    = errors.New("invalid route path")
	ErrDuplicatePath  = errors.New("duplicate route path")
	ErrEmptyName      = errors.New("empty route name")
	ErrDuplicateName  = errors.New("duplicate route name")
	ErrNilComponent   = errors.New("route has no component")
	ErrUnknownRoute   = errors.New("unknown route name")
	ErrHostNotFound   = errors.New("host node not found")
	ErrAlreadyMounted = errors.New("application already mounted")
)

// ConfigError reports every problem found while building a route table.
// Each problem wraps one of the Err* sentinels, so errors.Is works on the
// ConfigError itself.
type ConfigError struct {
	Problems []error
}

func (e *ConfigError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "invalid route table: " + strings.Join(msgs, "; ")
}

func (e *ConfigError) Unwrap() []error {
	return e.Problems
}
