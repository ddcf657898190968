package auth

import (
	"context"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

// LocalUserLookup resolves a local user record by claim email. Implemented
// by the user repository; kept narrow so the resolver stays testable.
type LocalUserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Identity is the resolved caller: token claims merged with the local user
// record when one exists.
type Identity struct {
	Subject   string
	Email     string
	Username  string
	LocalUser *models.User
	Roles     []string
}

// HasAnyRole reports whether the identity carries at least one of the
// required roles.
func (id *Identity) HasAnyRole(required ...models.Role) bool {
	for _, have := range id.Roles {
		for _, want := range required {
			if have == string(want) {
				return true
			}
		}
	}
	return false
}

// ResolveRoles builds the caller identity from verified claims. Token roles
// win when present; an empty role set falls back to the local user's stored
// role. A missing local user is not an error, the identity just carries no
// fallback role.
func ResolveRoles(ctx context.Context, claims *Claims, lookup LocalUserLookup) (*Identity, error) {
	identity := &Identity{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Username: claims.PreferredUsername,
		Roles:    claims.AllRoles(),
	}

	if lookup != nil && claims.Email != "" {
		user, err := lookup.GetByEmail(ctx, claims.Email)
		switch {
		case err == nil:
			identity.LocalUser = user
			if len(identity.Roles) == 0 {
				identity.Roles = []string{string(user.Role)}
			}
		case repositories.IsNotFoundError(err):
			// No local record, token roles stand alone.
		default:
			return nil, err
		}
	}

	return identity, nil
}
