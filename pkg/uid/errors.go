package uid

import "errors"

var (
	// ErrInvalidPhrase indicates a phrase no identifier can be derived from
	ErrInvalidPhrase = errors.New("invalid binding phrase")

	// ErrInvalidIdentifier indicates a malformed hex identifier
	ErrInvalidIdentifier = errors.New("invalid identifier")
)
