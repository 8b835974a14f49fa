package activityform

import "errors"

var (
	// ErrMissingElement indicates a required page element could not be found.
	ErrMissingElement = errors.New("required element missing")
	// ErrInvalidPath signals the page path carries no itinerary id.
	ErrInvalidPath = errors.New("itinerary id not found in path")
	// ErrTransport wraps failures to reach the backend.
	ErrTransport = errors.New("transport error")
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected response status")
	// ErrMalformedResponse covers bodies that are not JSON or lack redirect_url.
	ErrMalformedResponse = errors.New("malformed response")
)
