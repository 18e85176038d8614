package store

import "errors"

// ErrItemNotFound is returned when an operation references an unknown item id.
var ErrItemNotFound = errors.New("item not found")

// ValidationError reports a rejected stock movement. The message is meant to
// be shown to the user as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
