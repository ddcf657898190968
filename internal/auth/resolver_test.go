package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type stubLookup struct {
	user *models.User
	err  error
}

func (s stubLookup) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func claimsFor(subject, email string, realmRoles ...string) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		Email:            email,
		RealmAccess:      RoleClaim{Roles: realmRoles},
	}
}

func TestResolveRoles(t *testing.T) {
	ctx := context.Background()

	t.Run("Token_Roles_Win", func(t *testing.T) {
		lookup := stubLookup{user: &models.User{ID: "u-1", Email: "a@b.c", Role: models.RoleEtudiant}}

		identity, err := ResolveRoles(ctx, claimsFor("u-1", "a@b.c", "MEDECIN"), lookup)
		if err != nil {
			t.Fatalf("ResolveRoles failed: %v", err)
		}

		if !identity.HasAnyRole(models.RoleMedecin) {
			t.Error("Expected the token role MEDECIN to stand")
		}
		if identity.HasAnyRole(models.RoleEtudiant) {
			t.Error("The stored role must not be merged in when the token carries roles")
		}
		if identity.LocalUser == nil || identity.LocalUser.ID != "u-1" {
			t.Error("Expected the local user to be attached")
		}
	})

	t.Run("Falls_Back_To_Stored_Role", func(t *testing.T) {
		lookup := stubLookup{user: &models.User{ID: "u-1", Email: "a@b.c", Role: models.RoleAdmin}}

		identity, err := ResolveRoles(ctx, claimsFor("u-1", "a@b.c"), lookup)
		if err != nil {
			t.Fatalf("ResolveRoles failed: %v", err)
		}

		if !identity.HasAnyRole(models.RoleAdmin) {
			t.Error("Expected the stored role to back an empty token role set")
		}
	})

	t.Run("Missing_Local_User_Is_Not_An_Error", func(t *testing.T) {
		lookup := stubLookup{err: repositories.ErrNotFound}

		identity, err := ResolveRoles(ctx, claimsFor("u-1", "a@b.c", "ETUDIANT"), lookup)
		if err != nil {
			t.Fatalf("ResolveRoles failed: %v", err)
		}
		if identity.LocalUser != nil {
			t.Error("Expected no local user")
		}
		if !identity.HasAnyRole(models.RoleEtudiant) {
			t.Error("Token roles must stand without a local record")
		}
	})

	t.Run("Lookup_Failure_Propagates", func(t *testing.T) {
		lookup := stubLookup{err: errors.New("db down")}

		if _, err := ResolveRoles(ctx, claimsFor("u-1", "a@b.c"), lookup); err == nil {
			t.Fatal("Expected the lookup failure to propagate")
		}
	})

	t.Run("No_Email_Skips_Lookup", func(t *testing.T) {
		lookup := stubLookup{err: errors.New("must not be called")}

		identity, err := ResolveRoles(ctx, claimsFor("u-1", "", "MEDECIN"), lookup)
		if err != nil {
			t.Fatalf("ResolveRoles failed: %v", err)
		}
		if !identity.HasAnyRole(models.RoleMedecin) {
			t.Error("Expected token roles")
		}
	})
}

func TestClaims_AllRoles(t *testing.T) {
	claims := &Claims{
		RealmAccess: RoleClaim{Roles: []string{"MEDECIN", "offline_access"}},
		ResourceAccess: map[string]RoleClaim{
			"registry-api": {Roles: []string{"MEDECIN", "ADMIN"}},
		},
	}

	roles := claims.AllRoles()
	seen := make(map[string]int)
	for _, r := range roles {
		seen[r]++
	}

	if seen["MEDECIN"] != 1 {
		t.Errorf("Expected MEDECIN exactly once, got %d", seen["MEDECIN"])
	}
	if seen["ADMIN"] != 1 || seen["offline_access"] != 1 {
		t.Errorf("Expected the union of realm and resource roles, got %v", roles)
	}
}
