package providers

import (
	"errors"
	"fmt"
)

// UnavailableError reports that the remote model service could not serve the
// request: transport failure, authentication rejection, or rate limiting.
// Status is the HTTP status code, zero when the request never got a response.
type UnavailableError struct {
	Provider string
	Status   int
	Auth     bool
	Reason   string
}

func (e *UnavailableError) Error() string {
	switch {
	case e.Auth:
		return fmt.Sprintf("%s: authentication failed: %s", e.Provider, e.Reason)
	case e.Status == 429:
		return fmt.Sprintf("%s: rate limited", e.Provider)
	case e.Status > 0:
		return fmt.Sprintf("%s: service error (status %d): %s", e.Provider, e.Status, e.Reason)
	default:
		return fmt.Sprintf("%s: unreachable: %s", e.Provider, e.Reason)
	}
}

// IsUnavailable checks whether err is (or wraps) an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// IsAuthError checks whether err is an authentication failure from a provider.
func IsAuthError(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue) && ue.Auth
}

// statusError classifies a non-200 HTTP status from a provider endpoint.
func statusError(provider string, status int, body string) error {
	switch {
	case status == 401 || status == 403:
		return &UnavailableError{Provider: provider, Status: status, Auth: true, Reason: body}
	case status == 429:
		return &UnavailableError{Provider: provider, Status: status, Reason: body}
	case status >= 500:
		return &UnavailableError{Provider: provider, Status: status, Reason: body}
	default:
		return fmt.Errorf("%s: API error (status %d): %s", provider, status, body)
	}
}
