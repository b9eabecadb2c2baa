package access

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openclubhq/clubdesk/pkg/client"
	"github.com/openclubhq/clubdesk/pkg/domain"
)

func TestAPIProviderResolveSessionWithoutToken(t *testing.T) {
	p := NewAPIProvider(client.New("http://unused", ""), nil, nil)
	_, err := p.ResolveSession(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("ResolveSession() error = %v, want ErrUnauthenticated", err)
	}
}

func TestAPIProviderResolveSessionRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"}) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewAPIProvider(client.New(srv.URL, "stale-token"), nil, nil)
	_, err := p.ResolveSession(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("ResolveSession() error = %v, want ErrUnauthenticated", err)
	}
}

func TestAPIProviderSignInClassifiesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"bad credentials", http.StatusUnauthorized, ErrInvalidCredentials},
		{"malformed request", http.StatusBadRequest, ErrInvalidCredentials},
		{"server down", http.StatusBadGateway, ErrProviderUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			p := NewAPIProvider(client.New(srv.URL, ""), nil, nil)
			_, err := p.SignIn(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret1"})
			if !errors.Is(err, tt.want) {
				t.Errorf("SignIn() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAPIProviderSignInStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(client.SignInResponse{ //nolint:errcheck
			Token:   "fresh-token",
			Session: domain.Session{UserID: "user-1", Email: "coach@example.com"},
		})
	}))
	defer srv.Close()

	api := client.New(srv.URL, "")
	var saved string
	p := NewAPIProvider(api, func(tok string) error { saved = tok; return nil }, nil)

	session, err := p.SignIn(context.Background(), domain.Credentials{Email: "coach@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignIn() error: %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", session.UserID, "user-1")
	}
	if api.Token() != "fresh-token" {
		t.Errorf("client token = %q, want %q", api.Token(), "fresh-token")
	}
	if saved != "fresh-token" {
		t.Errorf("persisted token = %q, want %q", saved, "fresh-token")
	}
}

func TestAPIProviderSignOutClearsTokenEvenWhenAlreadyExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	api := client.New(srv.URL, "stale-token")
	cleared := false
	p := NewAPIProvider(api, nil, func() error { cleared = true; return nil })

	if err := p.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut() error: %v", err)
	}
	if api.Token() != "" {
		t.Errorf("client token = %q, want cleared", api.Token())
	}
	if !cleared {
		t.Error("clearToken hook did not run")
	}
}

func TestAPIProviderUpdatePasswordClassifiesUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewAPIProvider(client.New(srv.URL, "tok"), nil, nil)
	err := p.UpdatePassword(context.Background(), "longenough")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("UpdatePassword() error = %v, want ErrUnauthenticated", err)
	}
}
