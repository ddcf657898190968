package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/auth"
	"github.com/codinghaytam/medical-registry-api/internal/keycloak"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	kc        *keycloak.Client
	etudiants EtudiantService
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, kc *keycloak.Client, etudiants EtudiantService) AuthService {
	return &authService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		kc:        kc,
		etudiants: etudiants,
	}
}

// Login runs the password grant and resolves the caller's local identity
// from the returned token claims.
func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*LoginResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	tokens, err := s.kc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{
		AccessToken:      tokens.AccessToken,
		RefreshToken:     tokens.RefreshToken,
		ExpiresIn:        tokens.ExpiresIn,
		RefreshExpiresIn: tokens.RefreshExpiresIn,
		TokenType:        tokens.TokenType,
	}

	// The token is fresh from the provider, claims are decoded without a
	// second verification round trip.
	claims, err := auth.DecodeClaims(tokens.AccessToken)
	if err != nil {
		s.logger.Warn("Failed to decode fresh access token", "username", req.Username, "error", err)
		return result, nil
	}

	identity, err := auth.ResolveRoles(ctx, claims, userLookup{s.repo})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roles: %w", err)
	}
	result.User = identity.LocalUser
	result.Roles = identity.Roles

	s.logger.Info("User logged in", "username", req.Username, "roles", result.Roles)
	return result, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*keycloak.TokenResponse, error) {
	return s.kc.Refresh(ctx, refreshToken)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.kc.Logout(ctx, refreshToken)
}

// Signup self-registers a student account.
func (s *authService) Signup(ctx context.Context, req *validator.SignupRequest) (*models.Etudiant, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	niveau := req.Niveau
	if niveau == 0 {
		niveau = 1
	}

	return s.etudiants.Create(ctx, &validator.EtudiantCreateRequest{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Niveau:   niveau,
	})
}

// ChangePassword resets the provider password for the account matching the
// email.
func (s *authService) ChangePassword(ctx context.Context, req *validator.PasswordChangeRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	rep, err := s.kc.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, keycloak.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find provider user: %w", err)
	}

	if err := s.kc.ResetPassword(ctx, rep.ID, req.NewPassword); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.Info("Password changed", "user_id", rep.ID)
	return nil
}

func (s *authService) SendVerifyEmail(ctx context.Context, email string) error {
	rep, err := s.kc.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, keycloak.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find provider user: %w", err)
	}
	return s.kc.SendVerifyEmail(ctx, rep.ID)
}

// userLookup adapts the repository to the role resolver's narrow interface.
type userLookup struct {
	repo repositories.Repository
}

func (l userLookup) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return l.repo.User().GetByEmail(ctx, nil, email)
}
