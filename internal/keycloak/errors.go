package keycloak

import "errors"

var (
	// ErrProviderUnavailable covers network failures and 5xx responses from
	// the identity provider. Callers map it to 503 and never retry.
	ErrProviderUnavailable = errors.New("identity provider unavailable")

	ErrUserNotFound       = errors.New("identity provider user not found")
	ErrUserExists         = errors.New("identity provider user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
