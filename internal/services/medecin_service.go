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

type medecinService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	kc        *keycloak.Client
}

func NewMedecinService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, kc *keycloak.Client) MedecinService {
	return &medecinService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		kc:        kc,
	}
}

func (s *medecinService) Create(ctx context.Context, req *validator.MedecinCreateRequest) (*models.Medecin, error) {
	s.logger.Info("Creating medecin", "username", req.Username, "profession", req.Profession)

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
		Role:     models.RoleMedecin,
	}
	medecin := &models.Medecin{
		UserID:        kcID,
		Profession:    req.Profession,
		IsSpecialiste: req.IsSpecialiste,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, nil, user); err != nil {
			if repositories.IsDuplicateError(err) {
				return ErrUserExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := txRepo.Medecin().Create(ctx, nil, medecin); err != nil {
			return fmt.Errorf("failed to create medecin: %w", err)
		}
		return nil
	})
	if err != nil {
		removeProviderUser(ctx, s.kc, s.logger, kcID)
		return nil, err
	}

	medecin.User = user

	s.logger.Info("Medecin created", "medecin_id", medecin.ID, "user_id", kcID, "profession", medecin.Profession)
	return medecin, nil
}

func (s *medecinService) GetByID(ctx context.Context, id string) (*models.Medecin, error) {
	medecin, err := s.repo.Medecin().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMedecinNotFound
		}
		return nil, fmt.Errorf("failed to get medecin: %w", err)
	}
	return medecin, nil
}

func (s *medecinService) GetByUserID(ctx context.Context, userID string) (*models.Medecin, error) {
	medecin, err := s.repo.Medecin().GetByUserID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMedecinNotFound
		}
		return nil, fmt.Errorf("failed to get medecin: %w", err)
	}
	return medecin, nil
}

func (s *medecinService) List(ctx context.Context, filters repositories.MedecinFilters) ([]*models.Medecin, int64, error) {
	medecins, total, err := s.repo.Medecin().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list medecins: %w", err)
	}
	return medecins, total, nil
}

func (s *medecinService) Update(ctx context.Context, id string, req *validator.MedecinUpdateRequest) (*models.Medecin, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	medecin, err := s.repo.Medecin().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMedecinNotFound
		}
		return nil, fmt.Errorf("failed to get medecin: %w", err)
	}
	user, err := s.repo.User().GetByID(ctx, nil, medecin.UserID)
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
	if req.Profession != nil {
		medecin.Profession = *req.Profession
	}
	if req.IsSpecialiste != nil {
		medecin.IsSpecialiste = *req.IsSpecialiste
	}

	if err := syncProviderUser(ctx, s.kc, user); err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Update(ctx, nil, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if err := txRepo.Medecin().Update(ctx, nil, medecin); err != nil {
			return fmt.Errorf("failed to update medecin: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	medecin.User = user

	s.logger.Info("Medecin updated", "medecin_id", medecin.ID)
	return medecin, nil
}

func (s *medecinService) Delete(ctx context.Context, id string) error {
	medecin, err := s.repo.Medecin().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMedecinNotFound
		}
		return fmt.Errorf("failed to get medecin: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Medecin().Delete(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to delete medecin: %w", err)
		}
		if err := txRepo.User().Delete(ctx, nil, medecin.UserID); err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	removeProviderUser(ctx, s.kc, s.logger, medecin.UserID)

	s.logger.Info("Medecin deleted", "medecin_id", id)
	return nil
}
