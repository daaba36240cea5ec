package config

import "errors"

// ErrInvalidConfig is returned by [GetStructuredConfig] when the merged
// configuration violates a validation rule, e.g. a missing database DSN or
// a token sign key shorter than 10 characters.
var ErrInvalidConfig = errors.New("invalid configuration")
