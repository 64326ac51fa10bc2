// Package catalog defines domain-specific errors
package catalog

import "errors"

var (
	ErrComponentNotFound = errors.New("component not found in catalog")
	ErrNilDefinition     = errors.New("component definition cannot be nil")
	ErrDuplicateID       = errors.New("duplicate component ID")
)
