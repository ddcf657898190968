package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/keycloak"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type etudiantService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	kc        *keycloak.Client
}

func NewEtudiantService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, kc *keycloak.Client) EtudiantService {
	return &etudiantService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		kc:        kc,
	}
}

func (s *etudiantService) Create(ctx context.Context, req *validator.EtudiantCreateRequest) (*models.Etudiant, error) {
	s.logger.Info("Creating etudiant", "username", req.Username, "niveau", req.Niveau)

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
		Role:     models.RoleEtudiant,
	}
	etudiant := &models.Etudiant{
		UserID: kcID,
		Niveau: req.Niveau,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, nil, user); err != nil {
			if repositories.IsDuplicateError(err) {
				return ErrUserExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := txRepo.Etudiant().Create(ctx, nil, etudiant); err != nil {
			return fmt.Errorf("failed to create etudiant: %w", err)
		}
		return nil
	})
	if err != nil {
		removeProviderUser(ctx, s.kc, s.logger, kcID)
		return nil, err
	}

	etudiant.User = user

	s.logger.Info("Etudiant created", "etudiant_id", etudiant.ID, "user_id", kcID)
	return etudiant, nil
}

func (s *etudiantService) GetByID(ctx context.Context, id string) (*models.Etudiant, error) {
	etudiant, err := s.repo.Etudiant().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEtudiantNotFound
		}
		return nil, fmt.Errorf("failed to get etudiant: %w", err)
	}
	return etudiant, nil
}

func (s *etudiantService) GetByUserID(ctx context.Context, userID string) (*models.Etudiant, error) {
	etudiant, err := s.repo.Etudiant().GetByUserID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEtudiantNotFound
		}
		return nil, fmt.Errorf("failed to get etudiant: %w", err)
	}
	return etudiant, nil
}

func (s *etudiantService) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Etudiant, int64, error) {
	etudiants, total, err := s.repo.Etudiant().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list etudiants: %w", err)
	}
	return etudiants, total, nil
}

func (s *etudiantService) Update(ctx context.Context, id string, req *validator.EtudiantUpdateRequest) (*models.Etudiant, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	etudiant, err := s.repo.Etudiant().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEtudiantNotFound
		}
		return nil, fmt.Errorf("failed to get etudiant: %w", err)
	}
	user, err := s.repo.User().GetByID(ctx, nil, etudiant.UserID)
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
	if req.Niveau != nil {
		etudiant.Niveau = *req.Niveau
	}

	if err := syncProviderUser(ctx, s.kc, user); err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Update(ctx, nil, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if err := txRepo.Etudiant().Update(ctx, nil, etudiant); err != nil {
			return fmt.Errorf("failed to update etudiant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	etudiant.User = user

	s.logger.Info("Etudiant updated", "etudiant_id", etudiant.ID)
	return etudiant, nil
}

func (s *etudiantService) Delete(ctx context.Context, id string) error {
	etudiant, err := s.repo.Etudiant().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrEtudiantNotFound
		}
		return fmt.Errorf("failed to get etudiant: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Etudiant().Delete(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to delete etudiant: %w", err)
		}
		if err := txRepo.User().Delete(ctx, nil, etudiant.UserID); err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	removeProviderUser(ctx, s.kc, s.logger, etudiant.UserID)

	s.logger.Info("Etudiant deleted", "etudiant_id", id)
	return nil
}
