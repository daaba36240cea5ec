// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Rules live in the
// `validate` struct tags.
//
// Returns nil if the configuration is valid, or an error wrapping
// [ErrInvalidConfig] that names every failing field.
func (cfg *StructuredConfig) validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}
