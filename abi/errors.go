package abi

import "errors"

var (
	// ErrUnexpectedEOF is returned when fewer bytes remain than a read requires.
	ErrUnexpectedEOF = errors.New("abi: unexpected end of data")

	// ErrInvalidPadding is returned when the zero or sign-extension padding of a
	// static value is not canonical.
	ErrInvalidPadding = errors.New("abi: invalid padding")

	// ErrInvalidBool is returned when a boolean word is neither 0 nor 1.
	ErrInvalidBool = errors.New("abi: invalid bool value")

	// ErrInvalidOffset is returned when a dynamic offset points outside the
	// buffer or leaves no room for the length word.
	ErrInvalidOffset = errors.New("abi: invalid offset")

	// ErrValueOutOfRange is returned when a value cannot be represented in the
	// width of its type.
	ErrValueOutOfRange = errors.New("abi: value out of range")

	// ErrUnsupportedType is returned when a type has no canonical ABI mapping.
	ErrUnsupportedType = errors.New("abi: unsupported type")

	// ErrIncompleteEncoding is returned by Finalize when fewer values were
	// pushed than the sink was created for.
	ErrIncompleteEncoding = errors.New("abi: incomplete encoding")

	// ErrTypeMismatch is returned when an untyped value does not match the Go
	// type of the ABI type it is pushed as.
	ErrTypeMismatch = errors.New("abi: value type mismatch")

	// ErrArgumentCount is returned when a method or event receives a different
	// number of values than it declares.
	ErrArgumentCount = errors.New("abi: argument count mismatch")

	// ErrSelectorMismatch is returned when call data or log topics belong to a
	// different method or event.
	ErrSelectorMismatch = errors.New("abi: selector mismatch")

	// ErrDuplicateSelector is returned when two methods or events of one
	// interface hash to the same identifier.
	ErrDuplicateSelector = errors.New("abi: duplicate selector")

	// ErrInvalidSignature is returned for malformed signature text and for
	// method declarations that cannot exist (e.g. constant and payable).
	ErrInvalidSignature = errors.New("abi: invalid signature")

	// ErrTooManyTopics is returned when an event declares more indexed
	// arguments than a log can carry.
	ErrTooManyTopics = errors.New("abi: too many indexed arguments")
)
