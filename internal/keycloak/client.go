package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/codinghaytam/medical-registry-api/internal/config"
)

// UserRepresentation mirrors the provider's admin user payload, reduced to
// the fields the service manages.
type UserRepresentation struct {
	ID            string              `json:"id,omitempty"`
	Username      string              `json:"username,omitempty"`
	Email         string              `json:"email,omitempty"`
	FirstName     string              `json:"firstName,omitempty"`
	LastName      string              `json:"lastName,omitempty"`
	Enabled       bool                `json:"enabled"`
	EmailVerified bool                `json:"emailVerified"`
	Attributes    map[string][]string `json:"attributes,omitempty"`
}

// Credential is the payload for password resets.
type Credential struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// TokenResponse is the provider's answer on the token endpoint.
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
	TokenType        string `json:"token_type"`
}

// Client talks to the Keycloak admin and token endpoints for one realm.
type Client struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	tokens       *tokenManager
}

func NewClient(cfg config.KeycloakConfig) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", cfg.BaseURL, cfg.Realm)

	return &Client{
		baseURL:      cfg.BaseURL,
		realm:        cfg.Realm,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		tokens:       newTokenManager(tokenURL, cfg.ClientID, cfg.ClientSecret, httpClient),
	}
}

// ===== ADMIN USER API =====

// CreateUser provisions a user and returns the provider-assigned id.
func (c *Client) CreateUser(ctx context.Context, user UserRepresentation) (string, error) {
	resp, err := c.doAdmin(ctx, http.MethodPost, c.adminURL("users"), user)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		// The id comes back in the Location header
		location := resp.Header.Get("Location")
		return path.Base(location), nil
	case http.StatusConflict:
		return "", ErrUserExists
	default:
		return "", c.unexpectedStatus("create user", resp)
	}
}

func (c *Client) GetUserByID(ctx context.Context, id string) (*UserRepresentation, error) {
	resp, err := c.doAdmin(ctx, http.MethodGet, c.adminURL("users", id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var user UserRepresentation
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		return &user, nil
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		return nil, c.unexpectedStatus("get user", resp)
	}
}

// FindUserByEmail looks up a user by exact email match.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*UserRepresentation, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("exact", "true")

	resp, err := c.doAdmin(ctx, http.MethodGet, c.adminURL("users")+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.unexpectedStatus("find user by email", resp)
	}

	var users []UserRepresentation
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return &users[0], nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, user UserRepresentation) error {
	resp, err := c.doAdmin(ctx, http.MethodPut, c.adminURL("users", id), user)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrUserNotFound
	case http.StatusConflict:
		return ErrUserExists
	default:
		return c.unexpectedStatus("update user", resp)
	}
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.doAdmin(ctx, http.MethodDelete, c.adminURL("users", id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrUserNotFound
	default:
		return c.unexpectedStatus("delete user", resp)
	}
}

// ResetPassword sets a new non-temporary password.
func (c *Client) ResetPassword(ctx context.Context, id, password string) error {
	cred := Credential{Type: "password", Value: password, Temporary: false}
	resp, err := c.doAdmin(ctx, http.MethodPut, c.adminURL("users", id, "reset-password"), cred)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrUserNotFound
	default:
		return c.unexpectedStatus("reset password", resp)
	}
}

// SendVerifyEmail triggers the provider's verification email.
func (c *Client) SendVerifyEmail(ctx context.Context, id string) error {
	resp, err := c.doAdmin(ctx, http.MethodPut, c.adminURL("users", id, "send-verify-email"), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrUserNotFound
	default:
		return c.unexpectedStatus("send verify email", resp)
	}
}

// ===== TOKEN ENDPOINT (password grant) =====

// Login performs the password grant for an end user.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("username", username)
	form.Set("password", password)
	return c.doToken(ctx, form)
}

// Refresh exchanges a refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", refreshToken)
	return c.doToken(ctx, form)
}

// Logout revokes a refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", refreshToken)

	logoutURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/logout", c.baseURL, c.realm)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, logoutURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: logout returned %d", ErrProviderUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("logout returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) doToken(ctx context.Context, form url.Values) (*TokenResponse, error) {
	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.baseURL, c.realm)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var tokens TokenResponse
		if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
			return nil, fmt.Errorf("decode token response: %w", err)
		}
		return &tokens, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return nil, ErrInvalidCredentials
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: token endpoint returned %d", ErrProviderUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}
}

// ===== PLUMBING =====

func (c *Client) adminURL(parts ...string) string {
	return c.baseURL + "/admin/realms/" + c.realm + "/" + strings.Join(parts, "/")
}

// doAdmin sends an authenticated admin request. On a 401 it invalidates the
// cached token and retries exactly once with a fresh one.
func (c *Client) doAdmin(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	resp, err := c.sendAdmin(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		c.tokens.Invalidate()
		return c.sendAdmin(ctx, method, url, body)
	}

	return resp, nil
}

func (c *Client) sendAdmin(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	token, err := c.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build admin request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return resp, nil
}

func (c *Client) unexpectedStatus(operation string, resp *http.Response) error {
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: %s returned %d", ErrProviderUnavailable, operation, resp.StatusCode)
	}
	return fmt.Errorf("%s returned %d", operation, resp.StatusCode)
}
