// Package access owns the session and entitlement state that gates every
// protected view: who the user is, which licenses they hold, and whether a
// navigation may proceed.
package access

import "errors"

var (
	// ErrInvalidCredentials indicates that the provided email or password was rejected.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrProviderUnavailable indicates that the identity provider could not be reached
	// or answered with a server error.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	// ErrUnauthenticated indicates an operation that requires a signed-in session.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrLicenseNotFound indicates a license ID outside the user's resolved set.
	ErrLicenseNotFound = errors.New("license not found")
	// ErrLicenseFetchFailed indicates the license set could not be refreshed;
	// the previously resolved set is kept.
	ErrLicenseFetchFailed = errors.New("license fetch failed")
)
