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

type patientService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPatientService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) PatientService {
	return &patientService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *patientService) Create(ctx context.Context, req *validator.PatientCreateRequest) (*models.Patient, error) {
	s.logger.Info("Creating patient", "numero_de_dossier", req.NumeroDeDossier)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	patient := buildPatient(req)
	if err := s.repo.Patient().Create(ctx, nil, patient); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrPatientExists
		}
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.logger.Info("Patient created", "patient_id", patient.ID, "state", patient.State)
	return patient, nil
}

func (s *patientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	patient, err := s.repo.Patient().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *patientService) List(ctx context.Context, filters repositories.PatientFilters) ([]*models.Patient, int64, error) {
	patients, total, err := s.repo.Patient().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

func (s *patientService) Update(ctx context.Context, id string, req *validator.PatientUpdateRequest) (*models.Patient, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	patient, err := s.repo.Patient().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	applyPatientUpdate(patient, req)

	if err := s.repo.Patient().Update(ctx, nil, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	s.logger.Info("Patient updated", "patient_id", patient.ID)
	return patient, nil
}

func (s *patientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Patient().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrPatientNotFound
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	s.logger.Info("Patient deleted", "patient_id", id)
	return nil
}

func (s *patientService) GetActions(ctx context.Context, patientID string) ([]*models.Action, error) {
	if _, err := s.repo.Patient().GetByID(ctx, nil, patientID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	actions, err := s.repo.Action().GetByPatient(ctx, nil, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get actions for patient: %w", err)
	}
	return actions, nil
}

// buildPatient maps a create request to a new record. New patients start in
// the periodontics department unless the intake says otherwise.
func buildPatient(req *validator.PatientCreateRequest) *models.Patient {
	patient := &models.Patient{
		Nom:                  req.Nom,
		Prenom:               req.Prenom,
		NumeroDeDossier:      req.NumeroDeDossier,
		Adresse:              req.Adresse,
		Tel:                  req.Tel,
		MotifConsultation:    req.MotifConsultation,
		AnameseGenerale:      req.AnameseGenerale,
		AnamneseFamiliale:    req.AnamneseFamiliale,
		AnamneseLocale:       req.AnamneseLocale,
		HygieneBuccoDentaire: req.HygieneBuccoDentaire,
		TypeMastication:      req.TypeMastication,
		AntecedentsDentaires: req.AntecedentsDentaires,
		State:                models.ProfessionParodontaire,
	}
	if req.State != nil {
		patient.State = *req.State
	}
	return patient
}

func applyPatientUpdate(patient *models.Patient, req *validator.PatientUpdateRequest) {
	if req.Nom != nil {
		patient.Nom = *req.Nom
	}
	if req.Prenom != nil {
		patient.Prenom = *req.Prenom
	}
	if req.Adresse != nil {
		patient.Adresse = *req.Adresse
	}
	if req.Tel != nil {
		patient.Tel = *req.Tel
	}
	if req.MotifConsultation != nil {
		patient.MotifConsultation = *req.MotifConsultation
	}
	if req.AnameseGenerale != nil {
		patient.AnameseGenerale = req.AnameseGenerale
	}
	if req.AnamneseFamiliale != nil {
		patient.AnamneseFamiliale = req.AnamneseFamiliale
	}
	if req.AnamneseLocale != nil {
		patient.AnamneseLocale = req.AnamneseLocale
	}
	if req.HygieneBuccoDentaire != nil {
		patient.HygieneBuccoDentaire = *req.HygieneBuccoDentaire
	}
	if req.TypeMastication != nil {
		patient.TypeMastication = *req.TypeMastication
	}
	if req.AntecedentsDentaires != nil {
		patient.AntecedentsDentaires = req.AntecedentsDentaires
	}
}
