package core

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable marks a price-feed or generation-provider failure
// (unreachable, non-2xx, malformed body). Components that own a deterministic
// fallback recover it locally; it is never surfaced to callers.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrUnparseableResponse marks provider text with no extractable,
// schema-valid JSON. Recovered the same way as ErrUpstreamUnavailable.
var ErrUnparseableResponse = errors.New("unparseable provider response")

// ValidationError reports caller-supplied malformed input (negative price,
// negative amount, empty portfolio). It is surfaced to the caller; the
// library never guesses a substitute value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validationf builds a ValidationError for the given field.
func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
