package fhss

import "errors"

// ErrInvalidLength indicates a non-positive sequence length
var ErrInvalidLength = errors.New("sequence length must be positive")
