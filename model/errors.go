package model

import "errors"

var (
	// ErrUnknownCodeName is returned when a name does not match any code issued by the catalog.
	ErrUnknownCodeName = errors.New("unknown code name")
	// ErrOutOfRange is returned when an ordinal falls outside the catalog's bounds.
	ErrOutOfRange = errors.New("ordinal out of range")
	// ErrInvalidTransform marks a record that fails construction-time validation.
	ErrInvalidTransform = errors.New("invalid transform")
)
