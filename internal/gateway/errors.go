package gateway

import "errors"

// Common errors for backend calls.
var (
	// ErrUnavailable covers transport failures and non-2xx statuses.
	ErrUnavailable = errors.New("tutor service unavailable")
	// ErrBadReply covers replies that arrived but could not be interpreted.
	ErrBadReply = errors.New("malformed service reply")
)
