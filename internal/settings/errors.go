package settings

import "errors"

// ErrSettingNotFound indicates no value is stored for the requested key.
var ErrSettingNotFound = errors.New("setting not found")

// ErrInvalidValue indicates the provided value is not valid JSON.
var ErrInvalidValue = errors.New("invalid setting value")

// ErrUnknownField indicates a field name absent from a settings descriptor.
var ErrUnknownField = errors.New("unknown settings field")

// IsNotFound reports whether err is a missing-setting error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSettingNotFound)
}
