package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

type actionService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	notifier  NotificationService
}

func NewActionService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, notifier NotificationService) ActionService {
	return &actionService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		notifier:  notifier,
	}
}

func (s *actionService) Create(ctx context.Context, req *validator.ActionCreateRequest) (*models.Action, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Patient().GetByID(ctx, nil, req.PatientID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if _, err := s.repo.Medecin().GetByID(ctx, nil, req.MedecinID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMedecinNotFound
		}
		return nil, fmt.Errorf("failed to get medecin: %w", err)
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	action := &models.Action{
		Type:      req.Type,
		Date:      date,
		IsValid:   false,
		PatientID: req.PatientID,
		MedecinID: req.MedecinID,
	}

	if err := s.repo.Action().Create(ctx, nil, action); err != nil {
		return nil, fmt.Errorf("failed to create action: %w", err)
	}

	s.logger.Info("Action created", "action_id", action.ID, "type", action.Type, "patient_id", action.PatientID)
	return action, nil
}

func (s *actionService) GetByID(ctx context.Context, id string) (*models.Action, error) {
	action, err := s.repo.Action().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrActionNotFound
		}
		return nil, fmt.Errorf("failed to get action: %w", err)
	}
	return action, nil
}

func (s *actionService) GetByPatient(ctx context.Context, patientID string) ([]*models.Action, error) {
	actions, err := s.repo.Action().GetByPatient(ctx, nil, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get actions for patient: %w", err)
	}
	return actions, nil
}

func (s *actionService) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Action, int64, error) {
	actions, total, err := s.repo.Action().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list actions: %w", err)
	}
	return actions, total, nil
}

func (s *actionService) Update(ctx context.Context, id string, req *validator.ActionUpdateRequest) (*models.Action, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	action, err := s.repo.Action().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrActionNotFound
		}
		return nil, fmt.Errorf("failed to get action: %w", err)
	}

	if req.Date != nil {
		action.Date = *req.Date
	}

	if err := s.repo.Action().Update(ctx, nil, action); err != nil {
		return nil, fmt.Errorf("failed to update action: %w", err)
	}
	return action, nil
}

func (s *actionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Action().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrActionNotFound
		}
		return fmt.Errorf("failed to delete action: %w", err)
	}

	s.logger.Info("Action deleted", "action_id", id)
	return nil
}

// RequestTransfer records a pending transfer and moves the patient to the
// target department in one transaction. The audit record starts invalid and
// stays so until the receiving doctor validates it.
func (s *actionService) RequestTransfer(ctx context.Context, patientID, medecinID string, transferType models.ActionType) (*models.Action, error) {
	s.logger.Info("Requesting transfer", "patient_id", patientID, "medecin_id", medecinID, "type", transferType)

	if !transferType.Valid() {
		return nil, ErrActionTypeMismatch
	}

	var patient *models.Patient
	action := &models.Action{
		Type:      transferType,
		Date:      time.Now(),
		IsValid:   false,
		PatientID: patientID,
		MedecinID: medecinID,
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		var err error
		patient, err = txRepo.Patient().GetByID(ctx, nil, patientID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrPatientNotFound
			}
			return fmt.Errorf("failed to get patient: %w", err)
		}

		if _, err := txRepo.Medecin().GetByID(ctx, nil, medecinID); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrMedecinNotFound
			}
			return fmt.Errorf("failed to get medecin: %w", err)
		}

		if err := txRepo.Action().Create(ctx, nil, action); err != nil {
			return fmt.Errorf("failed to create action: %w", err)
		}

		if err := txRepo.Patient().UpdateState(ctx, nil, patientID, transferType.TargetState()); err != nil {
			return fmt.Errorf("failed to update patient state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyTransfer(ctx, patient, action)

	s.logger.Info("Transfer requested", "action_id", action.ID, "patient_id", patientID, "target_state", transferType.TargetState())
	return action, nil
}

// ValidateTransfer confirms a pending transfer. The target state is
// re-asserted so a validated record always matches the patient's department.
func (s *actionService) ValidateTransfer(ctx context.Context, actionID string, expectedType models.ActionType) (*models.Action, error) {
	var action *models.Action

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		var err error
		action, err = txRepo.Action().GetByID(ctx, nil, actionID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrActionNotFound
			}
			return fmt.Errorf("failed to get action: %w", err)
		}

		if action.Type != expectedType {
			return ErrActionTypeMismatch
		}
		if action.IsValid {
			return ErrActionAlreadyValidated
		}

		if err := txRepo.Action().SetValidity(ctx, nil, actionID, true); err != nil {
			return fmt.Errorf("failed to validate action: %w", err)
		}
		if err := txRepo.Patient().UpdateState(ctx, nil, action.PatientID, action.Type.TargetState()); err != nil {
			return fmt.Errorf("failed to update patient state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	action.IsValid = true

	s.logger.Info("Transfer validated", "action_id", actionID, "patient_id", action.PatientID)
	return action, nil
}

// notifyTransfer fans the transfer out to every doctor of the receiving
// department. Failures are logged, the transfer itself is already committed.
func (s *actionService) notifyTransfer(ctx context.Context, patient *models.Patient, action *models.Action) {
	target := action.Type.TargetState()

	medecins, err := s.repo.Medecin().GetByProfession(ctx, nil, target)
	if err != nil {
		s.logger.Error("Failed to load doctors for transfer notification",
			"action_id", action.ID, "profession", target, "error", err)
		return
	}

	message := fmt.Sprintf("Le patient %s %s a été transféré au service %s", patient.Prenom, patient.Nom, target)
	metadata := map[string]interface{}{
		"patient_id": patient.ID,
		"action_id":  action.ID,
		"type":       action.Type,
	}

	for _, medecin := range medecins {
		if _, err := s.notifier.Dispatch(ctx, medecin.UserID, models.NotificationPatientTransferred, message, metadata); err != nil {
			s.logger.Error("Failed to dispatch transfer notification",
				"action_id", action.ID, "user_id", medecin.UserID, "error", err)
		}
	}
}
