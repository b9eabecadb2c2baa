package access

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openclubhq/clubdesk/pkg/client"
	"github.com/openclubhq/clubdesk/pkg/domain"
)

// APIProvider adapts the ClubDesk API client to the IdentityProvider and
// LicenseSource ports, classifying transport failures into the sentinel
// errors of this package.
type APIProvider struct {
	api *client.Client

	// saveToken persists the bearer token after a successful sign-in;
	// clearToken removes it after sign-out. Either may be nil.
	saveToken  func(token string) error
	clearToken func() error
}

// NewAPIProvider wraps api. saveToken and clearToken handle local token
// persistence and may be nil.
func NewAPIProvider(api *client.Client, saveToken func(string) error, clearToken func() error) *APIProvider {
	return &APIProvider{api: api, saveToken: saveToken, clearToken: clearToken}
}

// ResolveSession resolves the stored token into a session.
func (p *APIProvider) ResolveSession(ctx context.Context) (domain.Session, error) {
	if p.api.Token() == "" {
		return domain.Session{}, ErrUnauthenticated
	}
	session, err := p.api.ResolveSession(ctx)
	if err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			return domain.Session{}, fmt.Errorf("%w: token rejected", ErrUnauthenticated)
		}
		return domain.Session{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return *session, nil
}

// SignIn exchanges credentials for a session and stores the returned token.
func (p *APIProvider) SignIn(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	resp, err := p.api.SignIn(ctx, creds)
	if err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) || client.IsStatus(err, http.StatusBadRequest) {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	p.api.SetToken(resp.Token)
	if p.saveToken != nil {
		// Persistence is best-effort: the in-memory token carries this run.
		p.saveToken(resp.Token) //nolint:errcheck
	}
	return resp.Session, nil
}

// SignOut ends the remote session and drops the local token.
func (p *APIProvider) SignOut(ctx context.Context) error {
	if err := p.api.SignOut(ctx); err != nil && !client.IsStatus(err, http.StatusUnauthorized) {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	p.api.SetToken("")
	if p.clearToken != nil {
		p.clearToken() //nolint:errcheck // best-effort file removal
	}
	return nil
}

// UpdatePassword replaces the password of the authenticated user.
func (p *APIProvider) UpdatePassword(ctx context.Context, newPassword string) error {
	if err := p.api.UpdatePassword(ctx, newPassword); err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return nil
}

// FetchLicensesForUser returns the user's licenses in resolution order.
func (p *APIProvider) FetchLicensesForUser(ctx context.Context, userID string) ([]domain.License, error) {
	licenses, err := p.api.FetchLicensesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return licenses, nil
}
