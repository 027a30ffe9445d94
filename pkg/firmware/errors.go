package firmware

import "errors"

// ErrInvalidProfile indicates a firmware profile the derivation code cannot use
var ErrInvalidProfile = errors.New("invalid firmware profile")
