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

type seanceService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSeanceService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) SeanceService {
	return &seanceService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *seanceService) Create(ctx context.Context, req *validator.SeanceCreateRequest) (*models.Seance, error) {
	s.logger.Info("Creating seance", "type", req.Type, "patient_id", req.PatientID, "medecin_id", req.MedecinID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Patient().GetByID(ctx, nil, req.PatientID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	medecin, err := s.repo.Medecin().GetByID(ctx, nil, req.MedecinID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMedecinNotFound
		}
		return nil, fmt.Errorf("failed to get medecin: %w", err)
	}

	if err := checkSeanceProfession(req.Type, medecin.Profession); err != nil {
		return nil, err
	}

	seance := &models.Seance{
		Type:      req.Type,
		Date:      req.Date,
		PatientID: req.PatientID,
		MedecinID: req.MedecinID,
	}

	if err := s.repo.Seance().Create(ctx, nil, seance); err != nil {
		return nil, fmt.Errorf("failed to create seance: %w", err)
	}

	s.logger.Info("Seance created", "seance_id", seance.ID, "type", seance.Type)
	return seance, nil
}

func (s *seanceService) GetByID(ctx context.Context, id string) (*models.Seance, error) {
	seance, err := s.repo.Seance().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSeanceNotFound
		}
		return nil, fmt.Errorf("failed to get seance: %w", err)
	}
	return seance, nil
}

func (s *seanceService) GetByPatient(ctx context.Context, patientID string) ([]*models.Seance, error) {
	seances, err := s.repo.Seance().GetByPatient(ctx, nil, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seances for patient: %w", err)
	}
	return seances, nil
}

func (s *seanceService) List(ctx context.Context, filters repositories.SeanceFilters) ([]*models.Seance, int64, error) {
	seances, total, err := s.repo.Seance().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list seances: %w", err)
	}
	return seances, total, nil
}

func (s *seanceService) Update(ctx context.Context, id string, req *validator.SeanceUpdateRequest) (*models.Seance, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	seance, err := s.repo.Seance().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSeanceNotFound
		}
		return nil, fmt.Errorf("failed to get seance: %w", err)
	}

	if req.Type != nil {
		seance.Type = *req.Type
	}
	if req.Date != nil {
		seance.Date = *req.Date
	}
	if req.MedecinID != nil {
		seance.MedecinID = *req.MedecinID
	}

	// Re-check the profession rule against the effective type and doctor.
	medecin, err := s.repo.Medecin().GetByID(ctx, nil, seance.MedecinID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMedecinNotFound
		}
		return nil, fmt.Errorf("failed to get medecin: %w", err)
	}
	if err := checkSeanceProfession(seance.Type, medecin.Profession); err != nil {
		return nil, err
	}

	if err := s.repo.Seance().Update(ctx, nil, seance); err != nil {
		return nil, fmt.Errorf("failed to update seance: %w", err)
	}

	s.logger.Info("Seance updated", "seance_id", seance.ID)
	return seance, nil
}

func (s *seanceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Seance().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSeanceNotFound
		}
		return fmt.Errorf("failed to delete seance: %w", err)
	}

	s.logger.Info("Seance deleted", "seance_id", id)
	return nil
}

// checkSeanceProfession rejects department-specific seance types assigned to
// a doctor of the other profession.
func checkSeanceProfession(seanceType models.SeanceType, profession models.Profession) error {
	required, restricted := seanceType.RequiredProfession()
	if restricted && required != profession {
		return &SeanceProfessionError{
			SeanceType: seanceType,
			Required:   required,
			Actual:     profession,
		}
	}
	return nil
}
