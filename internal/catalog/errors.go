package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier is returned for story ids or slugs that are not purely numeric.
	ErrInvalidIdentifier = errors.New("invalid story identifier")
	ErrNotFound          = errors.New("story not found")

	errEmptyStory = errors.New("invalid API response format")
	errNoStories  = errors.New("no stories found in API response")
)

// TransportError reports a non-2xx answer from the relay.
type TransportError struct {
	Status int
	URL    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.Status)
}

// DecodeError reports a body or field that could not be decoded.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.What, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
