package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type diagnosticService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewDiagnosticService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) DiagnosticService {
	return &diagnosticService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *diagnosticService) Create(ctx context.Context, req *validator.DiagnosticCreateRequest) (*models.Diagnostic, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	diagnostic := &models.Diagnostic{
		Type:           req.Type,
		Text:           req.Text,
		ConsultationID: req.ConsultationID,
		MedecinID:      req.MedecinID,
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if _, err := txRepo.Consultation().GetByID(ctx, nil, req.ConsultationID); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrConsultationNotFound
			}
			return fmt.Errorf("failed to get consultation: %w", err)
		}

		if err := checkDiagnosisRules(ctx, txRepo, req.ConsultationID, req.MedecinID); err != nil {
			return err
		}

		if err := txRepo.Diagnostic().Create(ctx, nil, diagnostic); err != nil {
			return fmt.Errorf("failed to create diagnostic: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Diagnostic created", "diagnostic_id", diagnostic.ID, "consultation_id", req.ConsultationID)
	return diagnostic, nil
}

func (s *diagnosticService) GetByID(ctx context.Context, id string) (*models.Diagnostic, error) {
	diagnostic, err := s.repo.Diagnostic().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrDiagnosticNotFound
		}
		return nil, fmt.Errorf("failed to get diagnostic: %w", err)
	}
	return diagnostic, nil
}

func (s *diagnosticService) GetByConsultation(ctx context.Context, consultationID string) ([]*models.Diagnostic, error) {
	diagnostics, err := s.repo.Diagnostic().GetByConsultation(ctx, nil, consultationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnostics: %w", err)
	}
	return diagnostics, nil
}

func (s *diagnosticService) Update(ctx context.Context, id string, req *validator.DiagnosticUpdateRequest) (*models.Diagnostic, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	diagnostic, err := s.repo.Diagnostic().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrDiagnosticNotFound
		}
		return nil, fmt.Errorf("failed to get diagnostic: %w", err)
	}

	if req.Type != nil {
		diagnostic.Type = *req.Type
	}
	if req.Text != nil {
		diagnostic.Text = *req.Text
	}

	if err := s.repo.Diagnostic().Update(ctx, nil, diagnostic); err != nil {
		return nil, fmt.Errorf("failed to update diagnostic: %w", err)
	}
	return diagnostic, nil
}

func (s *diagnosticService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Diagnostic().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrDiagnosticNotFound
		}
		return fmt.Errorf("failed to delete diagnostic: %w", err)
	}

	s.logger.Info("Diagnostic deleted", "diagnostic_id", id)
	return nil
}
