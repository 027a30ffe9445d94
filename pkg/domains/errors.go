package domains

import "errors"

var (
	// ErrUnsupportedDomain indicates a domain name outside the known plans
	ErrUnsupportedDomain = errors.New("unsupported regulatory domain")

	// ErrChannelOutOfRange indicates a channel index beyond the plan
	ErrChannelOutOfRange = errors.New("channel out of range")
)
