package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleClaim holds the roles embedded under realm_access / resource_access.
type RoleClaim struct {
	Roles []string `json:"roles"`
}

// Claims is the token payload the service cares about.
type Claims struct {
	jwt.RegisteredClaims

	Email             string               `json:"email"`
	PreferredUsername string               `json:"preferred_username"`
	Name              string               `json:"name"`
	EmailVerified     bool                 `json:"email_verified"`
	RealmAccess       RoleClaim            `json:"realm_access"`
	ResourceAccess    map[string]RoleClaim `json:"resource_access"`
}

// AllRoles returns the union of realm roles and every client's resource
// roles, deduplicated, order unspecified.
func (c *Claims) AllRoles() []string {
	seen := make(map[string]struct{})
	var roles []string

	add := func(rs []string) {
		for _, r := range rs {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			roles = append(roles, r)
		}
	}

	add(c.RealmAccess.Roles)
	for _, rc := range c.ResourceAccess {
		add(rc.Roles)
	}

	return roles
}

// DecodeClaims parses a token without verifying its signature. Only for
// tokens the service just received from the provider's token endpoint.
func DecodeClaims(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
