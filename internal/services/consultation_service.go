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

type consultationService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewConsultationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) ConsultationService {
	return &consultationService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

// Create registers the intake consultation together with its patient record.
// Both rows land in one transaction, a consultation never exists without its
// patient.
func (s *consultationService) Create(ctx context.Context, req *validator.ConsultationCreateRequest) (*models.Consultation, error) {
	s.logger.Info("Creating consultation", "medecin_id", req.MedecinID, "numero_de_dossier", req.Patient.NumeroDeDossier)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	patient := buildPatient(&req.Patient)
	consultation := &models.Consultation{
		Date:      req.Date,
		MedecinID: req.MedecinID,
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if _, err := txRepo.Medecin().GetByID(ctx, nil, req.MedecinID); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrMedecinNotFound
			}
			return fmt.Errorf("failed to get medecin: %w", err)
		}

		if err := txRepo.Patient().Create(ctx, nil, patient); err != nil {
			if repositories.IsDuplicateError(err) {
				return ErrPatientExists
			}
			return fmt.Errorf("failed to create patient: %w", err)
		}

		consultation.PatientID = patient.ID
		if err := txRepo.Consultation().Create(ctx, nil, consultation); err != nil {
			return fmt.Errorf("failed to create consultation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	consultation.Patient = patient

	s.logger.Info("Consultation created", "consultation_id", consultation.ID, "patient_id", patient.ID)
	return consultation, nil
}

func (s *consultationService) GetByID(ctx context.Context, id string) (*models.Consultation, error) {
	consultation, err := s.repo.Consultation().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return consultation, nil
}

func (s *consultationService) GetByPatient(ctx context.Context, patientID string) (*models.Consultation, error) {
	consultation, err := s.repo.Consultation().GetByPatient(ctx, nil, patientID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("failed to get consultation for patient: %w", err)
	}
	return consultation, nil
}

func (s *consultationService) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Consultation, int64, error) {
	consultations, total, err := s.repo.Consultation().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list consultations: %w", err)
	}
	return consultations, total, nil
}

func (s *consultationService) Update(ctx context.Context, id string, req *validator.ConsultationUpdateRequest) (*models.Consultation, error) {
	consultation, err := s.repo.Consultation().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}

	if req.Date != nil {
		consultation.Date = *req.Date
	}
	if req.MedecinID != nil {
		if _, err := s.repo.Medecin().GetByID(ctx, nil, *req.MedecinID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrMedecinNotFound
			}
			return nil, fmt.Errorf("failed to get medecin: %w", err)
		}
		consultation.MedecinID = *req.MedecinID
	}

	if err := s.repo.Consultation().Update(ctx, nil, consultation); err != nil {
		return nil, fmt.Errorf("failed to update consultation: %w", err)
	}

	s.logger.Info("Consultation updated", "consultation_id", consultation.ID)
	return consultation, nil
}

// Delete tears down the whole intake record: diagnostics, consultation and
// the patient it created.
func (s *consultationService) Delete(ctx context.Context, id string) error {
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		consultation, err := txRepo.Consultation().GetByID(ctx, nil, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrConsultationNotFound
			}
			return fmt.Errorf("failed to get consultation: %w", err)
		}

		if err := txRepo.Diagnostic().DeleteByConsultation(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to delete diagnostics: %w", err)
		}
		if err := txRepo.Consultation().Delete(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to delete consultation: %w", err)
		}
		if err := txRepo.Patient().Delete(ctx, nil, consultation.PatientID); err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to delete patient: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Consultation deleted", "consultation_id", id)
	return nil
}

func (s *consultationService) AddDiagnosis(ctx context.Context, consultationID string, req *validator.DiagnosisRequest) (*models.Diagnostic, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	diagnostic := &models.Diagnostic{
		Type:           req.Type,
		Text:           req.Text,
		ConsultationID: consultationID,
		MedecinID:      req.MedecinID,
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if _, err := txRepo.Consultation().GetByID(ctx, nil, consultationID); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrConsultationNotFound
			}
			return fmt.Errorf("failed to get consultation: %w", err)
		}

		if err := checkDiagnosisRules(ctx, txRepo, consultationID, req.MedecinID); err != nil {
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

	s.logger.Info("Diagnosis added", "consultation_id", consultationID, "diagnostic_id", diagnostic.ID)
	return diagnostic, nil
}

// checkDiagnosisRules enforces the two invariants on a consultation's
// diagnostics: at most two, and their authors hold distinct professions.
func checkDiagnosisRules(ctx context.Context, repo repositories.Repository, consultationID string, authorID *string) error {
	existing, err := repo.Diagnostic().GetByConsultation(ctx, nil, consultationID)
	if err != nil {
		return fmt.Errorf("failed to get diagnostics: %w", err)
	}

	if len(existing) >= 2 {
		return ErrDiagnosticLimitReached
	}
	if authorID == nil {
		return nil
	}

	author, err := repo.Medecin().GetByID(ctx, nil, *authorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMedecinNotFound
		}
		return fmt.Errorf("failed to get medecin: %w", err)
	}

	for _, diag := range existing {
		if diag.MedecinID == nil {
			continue
		}
		other, err := repo.Medecin().GetByID(ctx, nil, *diag.MedecinID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				continue
			}
			return fmt.Errorf("failed to get medecin: %w", err)
		}
		if other.Profession == author.Profession {
			return ErrDiagnosticProfessionTaken
		}
	}
	return nil
}
