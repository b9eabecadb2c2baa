package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/openclubhq/clubdesk/pkg/domain"
)

// Client is the ClubDesk API client.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a new API client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token used for subsequent requests.
// Called after an in-app sign-in.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// --- Identity ---

// SignInResponse is the sign-in/register response: the resolved session plus
// the bearer token for subsequent requests.
type SignInResponse struct {
	Token   string         `json:"token"`
	Session domain.Session `json:"session"`
}

// ResolveSession returns the session for the stored token.
func (c *Client) ResolveSession(ctx context.Context) (*domain.Session, error) {
	var s domain.Session
	if err := c.get(ctx, "/auth/session", &s); err != nil {
		return nil, fmt.Errorf("client.ResolveSession: %w", err)
	}
	return &s, nil
}

// SignIn authenticates with email and password.
func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (*SignInResponse, error) {
	var resp SignInResponse
	if err := c.post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, fmt.Errorf("client.SignIn: %w", err)
	}
	return &resp, nil
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	LicenseCode string `json:"license_code,omitempty"`
}

// Register creates an account, optionally bound to a validated license code.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*SignInResponse, error) {
	var resp SignInResponse
	if err := c.post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &resp, nil
}

// SignOut invalidates the current session on the server.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("client.SignOut: %w", err)
	}
	return nil
}

// UpdatePassword replaces the authenticated user's password.
// Input policy (length, confirmation) is the caller's concern.
func (c *Client) UpdatePassword(ctx context.Context, newPassword string) error {
	if err := c.doRequest(ctx, http.MethodPut, "/auth/password", map[string]string{"password": newPassword}, nil); err != nil {
		return fmt.Errorf("client.UpdatePassword: %w", err)
	}
	return nil
}

// --- Licenses ---

// FetchLicensesForUser returns the licenses held by a user, in server
// resolution order.
func (c *Client) FetchLicensesForUser(ctx context.Context, userID string) ([]domain.License, error) {
	var licenses []domain.License
	if err := c.get(ctx, "/api/users/"+url.PathEscape(userID)+"/licenses", &licenses); err != nil {
		return nil, fmt.Errorf("client.FetchLicensesForUser: %w", err)
	}
	return licenses, nil
}

// ValidateLicenseCode checks a shareable license code before registration.
func (c *Client) ValidateLicenseCode(ctx context.Context, code string) (*domain.License, error) {
	var lic domain.License
	if err := c.post(ctx, "/api/licenses/validate", map[string]string{"code": code}, &lic); err != nil {
		return nil, fmt.Errorf("client.ValidateLicenseCode: %w", err)
	}
	return &lic, nil
}

// --- Team data ---

// ListPlayers returns the roster for a license.
func (c *Client) ListPlayers(ctx context.Context, licenseID string) ([]domain.Player, error) {
	var players []domain.Player
	if err := c.get(ctx, "/api/licenses/"+url.PathEscape(licenseID)+"/players", &players); err != nil {
		return nil, fmt.Errorf("client.ListPlayers: %w", err)
	}
	return players, nil
}

// ListMatches returns fixtures and results for a license.
func (c *Client) ListMatches(ctx context.Context, licenseID string) ([]domain.Match, error) {
	var matches []domain.Match
	if err := c.get(ctx, "/api/licenses/"+url.PathEscape(licenseID)+"/matches", &matches); err != nil {
		return nil, fmt.Errorf("client.ListMatches: %w", err)
	}
	return matches, nil
}

// GetTeamSummary returns the dashboard aggregate for a license.
func (c *Client) GetTeamSummary(ctx context.Context, licenseID string) (*domain.TeamSummary, error) {
	var summary domain.TeamSummary
	if err := c.get(ctx, "/api/licenses/"+url.PathEscape(licenseID)+"/summary", &summary); err != nil {
		return nil, fmt.Errorf("client.GetTeamSummary: %w", err)
	}
	return &summary, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}
