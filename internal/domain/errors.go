package domain

import "errors"

var (
	// ErrMalformedRecord is returned when a feed line is not a well-formed
	// JSON object.
	ErrMalformedRecord = errors.New("feed record is not a well-formed JSON object")

	// ErrMissingField is returned when a record lacks a field the
	// resolution rules require (identifier, text, entities, user).
	ErrMissingField = errors.New("record is missing a required field")

	// ErrBadTimestamp is returned when a created_at value does not match
	// the expected timestamp format.
	ErrBadTimestamp = errors.New("created_at does not match the expected format")

	// ErrDepthExceeded is returned when nested retweet/quote records
	// recurse deeper than the configured limit.
	ErrDepthExceeded = errors.New("nested status depth exceeds the configured limit")

	// ErrMalformedDocument is returned when a collection file is not
	// well-formed XML.
	ErrMalformedDocument = errors.New("collection document is not well-formed XML")
)
