package form

import "errors"

var (
	// ErrUnknownField is returned when a command names a field that is not a
	// scalar field of the record.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalidValue is returned when a value cannot be converted to the
	// field's type (for example a non-boolean cc0 flag).
	ErrInvalidValue = errors.New("form: invalid value")
	// ErrIndexOutOfRange is returned when a source index is outside the
	// current approved sources list.
	ErrIndexOutOfRange = errors.New("form: source index out of range")
	// ErrUnknownAttestation is returned when an attestation id is not part of
	// the catalog.
	ErrUnknownAttestation = errors.New("form: unknown attestation")
	// ErrUnknownContentType is returned when a content type is not part of the
	// catalog.
	ErrUnknownContentType = errors.New("form: unknown content type")
	// ErrSubmitted is returned for any mutation or submission after the record
	// has been handed off.
	ErrSubmitted = errors.New("form: record already submitted")
	// ErrUnknownCommand is returned by Dispatch for unsupported command types.
	ErrUnknownCommand = errors.New("form: unknown command")
)
