package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/keycloak"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	kc        *keycloak.Client
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, kc *keycloak.Client) UserService {
	return &userService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		kc:        kc,
	}
}

// Create provisions the identity provider account first, then mirrors it
// locally. The provider account is removed if the local write fails.
func (s *userService) Create(ctx context.Context, req *validator.UserCreateRequest) (*models.User, error) {
	s.logger.Info("Creating user", "username", req.Username, "role", req.Role)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	kcID, err := provisionProviderUser(ctx, s.kc, req.Username, req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       kcID,
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		removeProviderUser(ctx, s.kc, s.logger, kcID)
		if repositories.IsDuplicateError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.User().GetByEmail(ctx, nil, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	users, total, err := s.repo.User().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Update pushes the change to the provider first so the two stores cannot
// drift on a provider outage.
func (s *userService) Update(ctx context.Context, id string, req *validator.UserUpdateRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := syncProviderUser(ctx, s.kc, user); err != nil {
		return nil, err
	}
	if err := s.repo.User().Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User updated", "user_id", user.ID)
	return user, nil
}

// Delete removes the local rows in one transaction, then the provider
// account. A missing provider account is tolerated.
func (s *userService) Delete(ctx context.Context, id string) error {
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := deleteUserProfiles(ctx, txRepo, id); err != nil {
			return err
		}
		if err := txRepo.User().Delete(ctx, nil, id); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.kc.DeleteUser(ctx, id); err != nil && !errors.Is(err, keycloak.ErrUserNotFound) {
		return fmt.Errorf("failed to delete provider user: %w", err)
	}

	s.logger.Info("User deleted", "user_id", id)
	return nil
}

// ===== SHARED PROVISIONING HELPERS =====

// provisionProviderUser creates the provider account and sets its password,
// returning the provider-assigned id (also used as the local primary key so
// token subjects match local records).
func provisionProviderUser(ctx context.Context, kc *keycloak.Client, username, email, name, password string) (string, error) {
	rep := keycloak.UserRepresentation{
		Username:  username,
		Email:     email,
		FirstName: name,
		Enabled:   true,
	}

	kcID, err := kc.CreateUser(ctx, rep)
	if err != nil {
		if errors.Is(err, keycloak.ErrUserExists) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("failed to create provider user: %w", err)
	}

	if err := kc.ResetPassword(ctx, kcID, password); err != nil {
		return "", fmt.Errorf("failed to set provider password: %w", err)
	}
	return kcID, nil
}

// removeProviderUser deletes a provider account best-effort. Used to roll
// back after a failed local write and to clean up after a local delete.
func removeProviderUser(ctx context.Context, kc *keycloak.Client, logger *slog.Logger, id string) {
	if err := kc.DeleteUser(ctx, id); err != nil && !errors.Is(err, keycloak.ErrUserNotFound) {
		logger.Error("Failed to remove provider user", "user_id", id, "error", err)
	}
}

func syncProviderUser(ctx context.Context, kc *keycloak.Client, user *models.User) error {
	rep := keycloak.UserRepresentation{
		Email:     user.Email,
		FirstName: user.Name,
		Enabled:   true,
	}
	if err := kc.UpdateUser(ctx, user.ID, rep); err != nil {
		if errors.Is(err, keycloak.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to sync provider user: %w", err)
	}
	return nil
}

// deleteUserProfiles removes the role-specific profile rows attached to a
// user, tolerating their absence.
func deleteUserProfiles(ctx context.Context, repo repositories.Repository, userID string) error {
	if medecin, err := repo.Medecin().GetByUserID(ctx, nil, userID); err == nil {
		if err := repo.Medecin().Delete(ctx, nil, medecin.ID); err != nil {
			return fmt.Errorf("failed to delete medecin profile: %w", err)
		}
	} else if !repositories.IsNotFoundError(err) {
		return fmt.Errorf("failed to get medecin profile: %w", err)
	}

	if etudiant, err := repo.Etudiant().GetByUserID(ctx, nil, userID); err == nil {
		if err := repo.Etudiant().Delete(ctx, nil, etudiant.ID); err != nil {
			return fmt.Errorf("failed to delete etudiant profile: %w", err)
		}
	} else if !repositories.IsNotFoundError(err) {
		return fmt.Errorf("failed to get etudiant profile: %w", err)
	}

	return nil
}
