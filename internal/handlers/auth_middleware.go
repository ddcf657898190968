package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codinghaytam/medical-registry-api/internal/auth"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

const identityContextKey = "identity"

// AuthMiddleware authenticates requests against the realm's signing keys and
// resolves the caller's roles (token claims first, local record fallback).
type AuthMiddleware struct {
	verifier *auth.Verifier
	userRepo repositories.UserRepository
}

func NewAuthMiddleware(verifier *auth.Verifier, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		userRepo: userRepo,
	}
}

// Authenticate verifies the bearer token and stores the resolved identity in
// the request context.
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing or malformed authorization header",
			})
			return
		}

		claims, err := am.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid token",
			})
			return
		}

		identity, err := auth.ResolveRoles(c.Request.Context(), claims, repoUserLookup{am.userRepo})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Failed to resolve caller identity",
			})
			return
		}

		c.Set(identityContextKey, identity)
		c.Set("user_id", identity.Subject)
		c.Set("user_email", identity.Email)
		c.Next()
	}
}

// RequireRole rejects callers holding none of the required roles.
func (am *AuthMiddleware) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}

		if !identity.HasAnyRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Insufficient permissions",
			})
			return
		}

		c.Next()
	}
}

// IdentityFromContext extracts the resolved caller identity.
func IdentityFromContext(c *gin.Context) (*auth.Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// repoUserLookup adapts the user repository to the resolver's interface.
type repoUserLookup struct {
	repo repositories.UserRepository
}

func (l repoUserLookup) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return l.repo.GetByEmail(ctx, nil, email)
}
