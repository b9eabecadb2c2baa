package access

import (
	"context"

	"github.com/openclubhq/clubdesk/pkg/domain"
)

// IdentityProvider is the port to the remote identity service. Implementations
// return the sentinel errors of this package so callers can classify failures
// with errors.Is.
type IdentityProvider interface {
	// ResolveSession resolves the stored credential into a session.
	// Returns ErrUnauthenticated when no valid credential exists.
	ResolveSession(ctx context.Context) (domain.Session, error)
	SignIn(ctx context.Context, creds domain.Credentials) (domain.Session, error)
	SignOut(ctx context.Context) error
	UpdatePassword(ctx context.Context, newPassword string) error
}

// LicenseSource is the port to the remote license records.
type LicenseSource interface {
	// FetchLicensesForUser returns the user's licenses in resolution order.
	FetchLicensesForUser(ctx context.Context, userID string) ([]domain.License, error)
}
