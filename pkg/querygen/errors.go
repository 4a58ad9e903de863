package querygen

import "errors"

var (
	// ErrUnrecognizedRootType is returned when a field's parent type is none
	// of the schema's query, mutation or subscription types.
	ErrUnrecognizedRootType = errors.New("parent type is not one of mutation/query/subscription")
	// ErrMissingType is returned when the schema references an undefined type.
	ErrMissingType = errors.New("type not found in schema")
	// ErrMissingField is returned when a type has no field of the requested name.
	ErrMissingField = errors.New("field not found in type")
	// ErrOutputTooLarge is returned when generated text exceeds the
	// configured output limit.
	ErrOutputTooLarge = errors.New("generated output exceeds size limit")
)
