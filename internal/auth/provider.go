package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SessionData is the profile and opaque session token returned by the
// external auth provider after a successful login handshake.
type SessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// ProviderInterface abstracts the external auth collaborator so the
// auth service can be tested without the network.
type ProviderInterface interface {
	FetchSessionData(ctx context.Context, sessionID string) (*SessionData, error)
}

// Provider calls the external auth service over HTTP. It is the only
// component that talks to the collaborator; the rest of the system
// sees opaque session tokens.
type Provider struct {
	url        string
	httpClient *http.Client
}

// Ensure Provider implements ProviderInterface
var _ ProviderInterface = (*Provider)(nil)

// NewProvider creates a provider client for the given endpoint.
func NewProvider(url string) *Provider {
	return &Provider{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// FetchSessionData exchanges the login handshake's session id for the
// user's profile and session token.
func (p *Provider) FetchSessionData(ctx context.Context, sessionID string) (*SessionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth provider returned status %d", resp.StatusCode)
	}

	var data SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if data.Email == "" || data.SessionToken == "" {
		return nil, fmt.Errorf("auth provider returned incomplete session data")
	}
	return &data, nil
}
