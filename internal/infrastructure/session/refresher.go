package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/leanios/access-gate/internal/core/ports"
)

const defaultRefreshTimeout = 5 * time.Second

var ErrRefreshRejected = errors.New("refresh rejected by auth provider")

// ProviderRefresher exchanges refresh tokens at the auth provider's token
// endpoint: POST {base}/auth/v1/token?grant_type=refresh_token.
type ProviderRefresher struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewProviderRefresher returns a refresher for the provider at baseURL,
// authenticating with the public apiKey. Calls are bounded by timeout.
func NewProviderRefresher(baseURL, apiKey string, timeout time.Duration) *ProviderRefresher {
	if timeout <= 0 {
		timeout = defaultRefreshTimeout
	}
	return &ProviderRefresher{
		endpoint: strings.TrimSuffix(baseURL, "/") + "/auth/v1/token?grant_type=refresh_token",
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Refresh performs a single exchange; it never retries.
func (p *ProviderRefresher) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d", ErrRefreshRejected, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrRefreshRejected)
	}

	return &ports.TokenPair{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresIn:    tr.ExpiresIn,
	}, nil
}
