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

// adminService manages ADMIN accounts. It reuses the user provisioning flow
// with the role pinned.
type adminService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	kc        *keycloak.Client
	users     UserService
}

func NewAdminService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, kc *keycloak.Client, users UserService) AdminService {
	return &adminService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		kc:        kc,
		users:     users,
	}
}

func (s *adminService) Create(ctx context.Context, req *validator.UserCreateRequest) (*models.User, error) {
	pinned := *req
	pinned.Role = models.RoleAdmin
	return s.users.Create(ctx, &pinned)
}

func (s *adminService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAdmin {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *adminService) List(ctx context.Context, filters repositories.ListFilters) ([]*models.User, int64, error) {
	role := models.RoleAdmin
	users, total, err := s.repo.User().List(ctx, nil, repositories.UserFilters{
		Role:      &role,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
		SortBy:    filters.SortBy,
		SortOrder: filters.SortOrder,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list admins: %w", err)
	}
	return users, total, nil
}

func (s *adminService) Update(ctx context.Context, id string, req *validator.UserUpdateRequest) (*models.User, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	// An admin account keeps its role.
	pinned := *req
	pinned.Role = nil
	return s.users.Update(ctx, id, &pinned)
}

func (s *adminService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
