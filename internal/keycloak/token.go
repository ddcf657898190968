package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// refreshSafetyWindow forces a refresh slightly before the token actually
// expires so in-flight admin requests never carry a token about to lapse.
const refreshSafetyWindow = 30 * time.Second

// tokenManager caches the client-credentials token for the admin API. The
// mutex doubles as single-flight: concurrent callers needing a refresh queue
// behind one fetch and reuse its result.
type tokenManager struct {
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	now func() time.Time
}

func newTokenManager(tokenURL, clientID, clientSecret string, httpClient *http.Client) *tokenManager {
	return &tokenManager{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

// Get returns a token valid for at least the safety window, refreshing if
// needed.
func (tm *tokenManager) Get(ctx context.Context) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.token != "" && tm.now().Add(refreshSafetyWindow).Before(tm.expiresAt) {
		return tm.token, nil
	}

	if err := tm.refreshLocked(ctx); err != nil {
		return "", err
	}
	return tm.token, nil
}

// Invalidate drops the cached token. Called when the admin API answers 401
// despite a token we believed valid.
func (tm *tokenManager) Invalidate() {
	tm.mu.Lock()
	tm.token = ""
	tm.expiresAt = time.Time{}
	tm.mu.Unlock()
}

func (tm *tokenManager) refreshLocked(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", tm.clientID)
	form.Set("client_secret", tm.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: token endpoint returned %d", ErrProviderUnavailable, resp.StatusCode)
		}
		return fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return fmt.Errorf("token endpoint returned empty token")
	}

	tm.token = body.AccessToken
	tm.expiresAt = tm.now().Add(time.Duration(body.ExpiresIn) * time.Second)
	return nil
}
