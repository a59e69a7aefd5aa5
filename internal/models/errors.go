package models

import "errors"

var (
	// ErrInvalidFieldType is returned for a field tag outside the seven known kinds.
	ErrInvalidFieldType = errors.New("invalid field type")
	// ErrInvalidFormData is returned when a persisted form record is malformed.
	ErrInvalidFormData = errors.New("invalid form data")
	// ErrDecode is returned when the persisted collection is not a JSON array.
	ErrDecode = errors.New("decode form collection")
	// ErrNotFound marks an absent form; callers treat it as a redirect, not a failure.
	ErrNotFound = errors.New("form not found")

	ErrUnknownProperty      = errors.New("unknown property")
	ErrImmutableProperty    = errors.New("property is immutable")
	ErrInvalidPropertyValue = errors.New("invalid property value")
)
