// Package msauth implements the OAuth2 client-credentials grant against the
// Microsoft identity platform.
package msauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"m365-dashboard/internal/core/domain"
	ports "m365-dashboard/internal/core/ports/output"
)

// GraphScope is the app-only scope for Microsoft Graph.
const GraphScope = "https://graph.microsoft.com/.default"

// SharePointScope returns the app-only scope for a SharePoint tenant host.
func SharePointScope(hostname string) string {
	return fmt.Sprintf("https://%s/.default", hostname)
}

type cachedToken struct {
	token     string
	expiresAt time.Time
}

type client struct {
	baseURL string
	httpc   *http.Client

	mu    sync.Mutex
	cache map[string]cachedToken
}

// New creates a token source hitting baseURL (the production value is
// https://login.microsoftonline.com).
func New(baseURL string, timeout time.Duration) ports.TokenSource {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		cache:   make(map[string]cachedToken),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`

	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Suberror         string `json:"suberror"`
	ErrorCodes       []int  `json:"error_codes"`
	CorrelationID    string `json:"correlation_id"`
	TraceID          string `json:"trace_id"`
}

func (c *client) Acquire(ctx context.Context, creds domain.ClientCredentials, scope string) (string, error) {
	cacheKey := creds.TenantID + "|" + creds.ClientID + "|" + scope

	c.mu.Lock()
	if cached, ok := c.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		c.mu.Unlock()
		return cached.token, nil
	}
	c.mu.Unlock()

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)
	form.Set("scope", scope)

	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.baseURL, creds.TenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	if body.AccessToken == "" {
		return "", &domain.TokenError{
			Code:          body.Error,
			Description:   body.ErrorDescription,
			Suberror:      body.Suberror,
			ErrorCodes:    body.ErrorCodes,
			CorrelationID: body.CorrelationID,
			TraceID:       body.TraceID,
		}
	}

	// Refresh one minute early so in-flight requests never carry a token
	// about to expire.
	ttl := time.Duration(body.ExpiresIn) * time.Second
	if ttl > time.Minute {
		ttl -= time.Minute
	}

	c.mu.Lock()
	c.cache[cacheKey] = cachedToken{token: body.AccessToken, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()

	return body.AccessToken, nil
}
