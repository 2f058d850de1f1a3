package api

import (
	"errors"
	"fmt"
)

// Failure classes for backend calls. Callers branch on these with
// errors.Is; the concrete *APIError (when the server responded) is
// reachable with errors.As.
var (
	// ErrUnauthorized is a 401 response. The client does not force a
	// logout on it; callers decide.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrForbidden is a 403 response.
	ErrForbidden = errors.New("api: forbidden")
	// ErrServer is any response with status 500 or above.
	ErrServer = errors.New("api: server error")
	// ErrNetwork means no response arrived at all.
	ErrNetwork = errors.New("api: no response from server")
)

// APIError is a non-2xx response from the backend, carrying the HTTP
// status and the server-provided detail message when one was present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Is maps the status onto the failure classes so errors.Is works against
// the sentinels above.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401
	case ErrForbidden:
		return e.Status == 403
	case ErrServer:
		return e.Status >= 500
	}
	return false
}

// Detail extracts the server-provided detail from an error, falling back
// to the given default. Views use this to surface login/signup failures
// verbatim.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
