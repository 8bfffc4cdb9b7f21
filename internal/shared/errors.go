package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("server address and API token are required")

	// Transport and server errors
	ErrNetwork            = fmt.Errorf("network request failed")
	ErrParse              = fmt.Errorf("unexpected response shape")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrItemNotFound       = fmt.Errorf("item not found")

	// Input validation errors
	ErrInvalidInput      = fmt.Errorf("invalid input")
	ErrNoKindSelected    = fmt.Errorf("no kind selected")
	ErrNoGenresSelected  = fmt.Errorf("no genres selected")
	ErrEmptyCollection   = fmt.Errorf("collection is empty")
	ErrMissingArgument   = fmt.Errorf("missing required argument")
	ErrInvalidFlag       = fmt.Errorf("invalid flag value")
	ErrMissingPlaylistID = fmt.Errorf("missing playlist ID")
)
